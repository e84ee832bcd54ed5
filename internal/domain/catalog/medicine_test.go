package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMedicineInput_Validate(t *testing.T) {
	valid := MedicineInput{CategoryID: "c1", Name: "Napa Extra", Price: "12.50", Stock: 10}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("negative price", func(t *testing.T) {
		in := valid
		in.Price = "-1"
		assert.ErrorIs(t, in.Validate(), ErrInvalidPrice)
	})

	t.Run("non numeric price", func(t *testing.T) {
		in := valid
		in.Price = "cheap"
		assert.Error(t, in.Validate())
	})

	t.Run("negative stock", func(t *testing.T) {
		in := valid
		in.Stock = -3
		assert.Error(t, in.Validate())
	})

	t.Run("missing category", func(t *testing.T) {
		in := valid
		in.CategoryID = ""
		assert.Error(t, in.Validate())
	})

	t.Run("bad image url", func(t *testing.T) {
		in := valid
		bad := "not a url"
		in.ImageURL = &bad
		assert.Error(t, in.Validate())
	})
}

func TestCategoryInput_Validate(t *testing.T) {
	assert.NoError(t, CategoryInput{Name: "Pain relief"}.Validate())
	assert.Error(t, CategoryInput{Name: ""}.Validate())
}

func TestListQuery_Values(t *testing.T) {
	active := true
	q := ListQuery{Page: 2, Limit: 12, Search: "  napa ", IsActive: &active, SortBy: "price", SortOrder: SortDesc}

	v := q.Values()
	assert.Equal(t, "2", v.Get("page"))
	assert.Equal(t, "12", v.Get("limit"))
	assert.Equal(t, "napa", v.Get("search"))
	assert.Equal(t, "true", v.Get("isActive"))
	assert.Equal(t, "desc", v.Get("sortOrder"))
	assert.False(t, v.Has("skip"))

	assert.Equal(t, "medicines?", ListQuery{SortOrder: "sideways"}.CacheKey())
	assert.Equal(t, q.CacheKey(), q.CacheKey())
}

func TestMedicine_Decode(t *testing.T) {
	body := `{"id":"m1","name":"Napa","price":"10.00","stock":3,"isActive":true,"imageUrl":null,"category":{"name":"Pain"}}`

	var m Medicine
	require.NoError(t, json.Unmarshal([]byte(body), &m))
	assert.Equal(t, "10", m.UnitPrice().String())
	assert.True(t, m.InStock())
	assert.Nil(t, m.ImageURL)
	assert.Equal(t, "Pain", m.Category.Name)
}
