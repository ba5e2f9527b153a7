package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/apiprobe/internal/catalog"
	"github.com/raysh454/apiprobe/internal/model"
)

func TestDefault_EndpointsPerMethod(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	get := c.EndpointsFor(model.MethodGet)
	require.Len(t, get, 4)
	assert.Equal(t, "/employees", get[0].Path)
	assert.Equal(t, "Health Check", get[3].Label)

	assert.Equal(t, []catalog.Endpoint{{Path: "/employees", Label: "Create Employee"}}, c.EndpointsFor(model.MethodPost))
	assert.Equal(t, "/employees/1", c.EndpointsFor(model.MethodPut)[0].Path)
	assert.Equal(t, "/employees/1", c.EndpointsFor(model.MethodDelete)[0].Path)
}

func TestDefault_SampleBodies(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	assert.Empty(t, c.SampleBody(model.MethodGet))
	assert.Empty(t, c.SampleBody(model.MethodDelete))

	var post map[string]string
	require.NoError(t, json.Unmarshal([]byte(c.SampleBody(model.MethodPost)), &post))
	assert.Equal(t, "John Doe", post["employee_name"])
	assert.Equal(t, "New York", post["employee_city"])

	var put map[string]string
	require.NoError(t, json.Unmarshal([]byte(c.SampleBody(model.MethodPut)), &put))
	assert.Equal(t, "Smith", put["employee_lastname"])
	assert.Equal(t, "Los Angeles", put["employee_city"])

	assert.Contains(t, c.SampleBody(model.MethodPost), "\n  \"employee_number\": \"EMP001\"")
}

func TestForm_SwitchingMethodResetsEndpointAndBody(t *testing.T) {
	t.Parallel()
	c := catalog.Default()

	post := c.Form(model.MethodPost)
	assert.Equal(t, "/employees", post.Endpoint)
	assert.NotEmpty(t, post.Body)
	assert.Equal(t, catalog.DefaultBaseURL, post.BaseURL)

	del := c.Form(model.MethodDelete)
	assert.Equal(t, "/employees/1", del.Endpoint)
	assert.Empty(t, del.Body)
}

func TestParse_OverlaysMethods(t *testing.T) {
	t.Parallel()
	doc := `
base_url: http://staging:8080/api/v1
endpoints:
  get:
    - path: /employees?page=2
      label: Second page
    - path: /health
bodies:
  POST:
    employee_number: EMP777
    employee_city: Oslo
  PUT: '{"employee_city": "Bergen"}'
`
	c, err := catalog.Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "http://staging:8080/api/v1", c.BaseURL)
	require.Len(t, c.EndpointsFor(model.MethodGet), 2)
	assert.Equal(t, "/health", c.EndpointsFor(model.MethodGet)[1].Label, "label defaults to path")
	assert.Len(t, c.EndpointsFor(model.MethodDelete), 1, "methods absent from the file keep defaults")

	var post map[string]string
	require.NoError(t, json.Unmarshal([]byte(c.SampleBody(model.MethodPost)), &post))
	assert.Equal(t, "Oslo", post["employee_city"])
	assert.Equal(t, `{"employee_city": "Bergen"}`, c.SampleBody(model.MethodPut))
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"unknown method":  "endpoints:\n  PATCH:\n    - path: /x\n",
		"missing path":    "endpoints:\n  GET:\n    - label: nothing\n",
		"body on GET":     "bodies:\n  GET: '{}'\n",
		"not yaml at all": "endpoints: [",
	}
	for name, doc := range cases {
		_, err := catalog.Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_url: http://example.test\n"), 0o644))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", c.BaseURL)

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
