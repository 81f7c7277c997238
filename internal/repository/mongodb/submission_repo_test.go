package mongodb

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestCompanyFilter(t *testing.T) {
	t.Run("empty filter matches everything", func(t *testing.T) {
		assert.Empty(t, companyFilter(""))
	})

	t.Run("case-insensitive literal regex", func(t *testing.T) {
		f := companyFilter("goog")
		require.Len(t, f, 1)
		assert.Equal(t, "company", f[0].Key)
		assert.Equal(t, bson.Regex{Pattern: "goog", Options: "i"}, f[0].Value)

		re := regexp.MustCompile("(?i)" + f[0].Value.(bson.Regex).Pattern)
		assert.True(t, re.MatchString("Google"))
		assert.True(t, re.MatchString("GOOGLE INC"))
		assert.False(t, re.MatchString("Amazon"))
	})

	t.Run("regex metacharacters are escaped", func(t *testing.T) {
		f := companyFilter("a.b(")
		pattern := f[0].Value.(bson.Regex).Pattern
		re := regexp.MustCompile("(?i)" + pattern)
		assert.True(t, re.MatchString("xa.b(y"))
		assert.False(t, re.MatchString("axb("))
	})
}

func TestOwnedFilter(t *testing.T) {
	f := ownedFilter("sub-1", "user-1")
	assert.Equal(t, bson.D{{Key: "_id", Value: "sub-1"}, {Key: "user_id", Value: "user-1"}}, f)
}

func TestListPipeline(t *testing.T) {
	p := listPipeline("acme")
	require.Len(t, p, 5)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, "$lookup", p[2][0].Key)
}
