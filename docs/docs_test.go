package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDoc(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger string `json:"swagger"`
		Info    struct {
			Title string `json:"title"`
		} `json:"info"`
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	assert.Equal(t, "2.0", spec.Swagger)
	assert.Equal(t, "News API", spec.Info.Title)
	assert.Equal(t, "/", spec.BasePath)

	wantOps := map[string][]string{
		"/api/news":      {"get", "post", "delete"},
		"/api/news/{id}": {"get", "put", "patch", "delete"},
	}
	for path, methods := range wantOps {
		require.Contains(t, spec.Paths, path)
		for _, m := range methods {
			assert.Contains(t, spec.Paths[path], m, "%s %s", m, path)
		}
	}
	assert.Contains(t, spec.Definitions, "news.DTO")
	assert.Contains(t, string(spec.Definitions["news.DTO"]), `"_id"`)
}
