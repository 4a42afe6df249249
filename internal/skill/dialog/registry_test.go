package dialog

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skillerrors "timeskill/internal/common/errors"
)

const validRegistry = `{
	"lang": "en-us",
	"templates": {
		"current-time": "It is {time}",
		"current-time-location": "It is {time} in {location}",
		"future-time": "It will be {time}",
		"future-time-location": "It will be {time} in {location}",
		"location-not-found": "I could not find a city named {location}"
	}
}`

func TestParseRegistry_Valid(t *testing.T) {
	registry, err := ParseRegistry([]byte(validRegistry))
	require.NoError(t, err)
	assert.Equal(t, "en-us", registry.Lang)
	assert.Len(t, registry.Templates, 5)
}

func TestParseRegistry_MissingCoreKey(t *testing.T) {
	data := `{
		"lang": "en-us",
		"templates": {
			"current-time": "It is {time}"
		}
	}`

	_, err := ParseRegistry([]byte(data))
	require.Error(t, err)

	var stdErr *skillerrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, skillerrors.ErrCodeRegistryInvalid, stdErr.Code)
}

func TestParseRegistry_EmptyTemplate(t *testing.T) {
	data := `{
		"lang": "en-us",
		"templates": {
			"current-time": "",
			"current-time-location": "It is {time} in {location}",
			"future-time": "It will be {time}",
			"future-time-location": "It will be {time} in {location}",
			"location-not-found": "I could not find a city named {location}"
		}
	}`

	_, err := ParseRegistry([]byte(data))
	assert.Error(t, err)
}

func TestParseRegistry_MalformedJSON(t *testing.T) {
	_, err := ParseRegistry([]byte(`{not json`))
	assert.Error(t, err)
}

func TestLoadRegistry_BundledLocale(t *testing.T) {
	path := filepath.Join("..", "..", "..", "configs", "dialog", "en-us.json")

	registry, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "en-us", registry.Lang)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestRegistry_Render(t *testing.T) {
	registry, err := ParseRegistry([]byte(validRegistry))
	require.NoError(t, err)

	tests := []struct {
		name          string
		key           string
		substitutions map[string]string
		want          string
	}{
		{
			name:          "single placeholder",
			key:           KeyCurrentTime,
			substitutions: map[string]string{"time": "9:30"},
			want:          "It is 9:30",
		},
		{
			name:          "two placeholders",
			key:           KeyCurrentTimeLocation,
			substitutions: map[string]string{"time": "21:30", "location": "Tokyo, Japan"},
			want:          "It is 21:30 in Tokyo, Japan",
		},
		{
			name:          "unresolved placeholder survives",
			key:           KeyFutureTime,
			substitutions: map[string]string{},
			want:          "It will be {time}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := registry.Render(tt.key, tt.substitutions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Render_UnknownKey(t *testing.T) {
	registry, err := ParseRegistry([]byte(validRegistry))
	require.NoError(t, err)

	_, err = registry.Render("no-such-key", nil)
	require.Error(t, err)

	var stdErr *skillerrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, skillerrors.ErrCodeTemplateNotFound, stdErr.Code)
}
