package commands

import (
	"testing"

	"github.com/hltcoe/turkle-client/internal/constants"
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()

	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o600))
}

func TestReadJSONLines(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/users.jsonl", "{\"username\": \"alice\", \"password\": \"x\"}\n\n{\"username\": \"bob\"}\n")

	users, err := readJSONLines[turkle.UserCreateRequest](fs, "/data/users.jsonl")
	require.NoError(t, err)
	assert.Equal(t, []turkle.UserCreateRequest{
		{Username: "alice", Password: "x"},
		{Username: "bob"},
	}, users)
}

func TestReadJSONLines_Errors(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/empty.jsonl", "\n  \n")
	writeFile(t, fs, "/bad.jsonl", "{\"username\": \"a\"}\n{not json}\n")

	_, err := readJSONLines[turkle.UserCreateRequest](fs, "/empty.jsonl")
	require.ErrorIs(t, err, constants.ErrEmptyPayload)

	_, err = readJSONLines[turkle.UserCreateRequest](fs, "/bad.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = readJSONLines[turkle.UserCreateRequest](fs, "/missing.jsonl")
	require.Error(t, err)
}

func TestLoadProjectCreates_TemplateFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/work/templates/sentiment.html", "<p>${text}</p>")
	writeFile(t, fs, "/work/projects.jsonl",
		"{\"name\": \"Sentiment\", \"template_file\": \"templates/sentiment.html\"}\n"+
			"{\"name\": \"Inline\", \"html_template\": \"<b>x</b>\", \"filename\": \"inline.html\"}\n")

	projects, err := loadProjectCreates(fs, "/work/projects.jsonl")
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Sentiment", projects[0].Name)
	assert.Equal(t, "<p>${text}</p>", projects[0].HTMLTemplate)
	assert.Equal(t, "sentiment.html", projects[0].Filename)

	assert.Equal(t, "<b>x</b>", projects[1].HTMLTemplate)
	assert.Equal(t, "inline.html", projects[1].Filename)
}

func TestLoadProjectUpdates_TemplateFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/work/v2.html", "<p>v2</p>")
	writeFile(t, fs, "/work/updates.jsonl", "{\"id\": 4, \"template_file\": \"v2.html\"}\n{\"id\": 5, \"active\": false}\n")

	projects, err := loadProjectUpdates(fs, "/work/updates.jsonl")
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, 4, projects[0].ID)
	require.NotNil(t, projects[0].HTMLTemplate)
	assert.Equal(t, "<p>v2</p>", *projects[0].HTMLTemplate)
	require.NotNil(t, projects[0].Filename)
	assert.Equal(t, "v2.html", *projects[0].Filename)

	assert.Nil(t, projects[1].HTMLTemplate)
	require.NotNil(t, projects[1].Active)
	assert.False(t, *projects[1].Active)
}

func TestLoadBatchCreates_CSVFile(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/work/round1.csv", "text\nhello\n")
	writeFile(t, fs, "/work/batches.jsonl", "{\"name\": \"Round 1\", \"project\": 3, \"csv_file\": \"round1.csv\"}\n")

	batches, err := loadBatchCreates(fs, "/work/batches.jsonl")
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, turkle.BatchCreateRequest{
		Name:     "Round 1",
		Project:  3,
		CSVText:  "text\nhello\n",
		Filename: "round1.csv",
	}, batches[0])

	writeFile(t, fs, "/work/broken.jsonl", "{\"name\": \"x\", \"project\": 3, \"csv_file\": \"missing.csv\"}\n")

	_, err = loadBatchCreates(fs, "/work/broken.jsonl")
	require.Error(t, err)
}

func TestRelativeTo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/a/b/c.html", relativeTo("/a/b/p.jsonl", "c.html"))
	assert.Equal(t, "/x/c.html", relativeTo("/a/b/p.jsonl", "/x/c.html"))
	assert.Equal(t, "c.html", relativeTo("p.jsonl", "c.html"))
}
