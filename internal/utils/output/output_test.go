package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/activities/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var activities = []models.Activity{
	{Category: "Natação", ClassName: "Iniciante", Schedule: "Seg 10:00 | Qua 10:00", Cost: 100, EnrollmentDeadline: "10/03"},
	{Category: "Yoga", ClassName: "Turma \"A\", noite", Schedule: "Ter 18:00", Cost: 0, EnrollmentDeadline: "12/03"},
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, activities))

	var got []models.Activity
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, activities, got)
	assert.Contains(t, buf.String(), `"class_name": "Iniciante"`)
	assert.Contains(t, buf.String(), `"enrollment_deadline": "10/03"`)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, activities))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "category,class_name,schedule,cost,enrollment_deadline", lines[0])
	assert.Equal(t, "Natação,Iniciante,Seg 10:00 | Qua 10:00,100.00,10/03", lines[1])
	assert.Equal(t, `Yoga,"Turma ""A"", noite",Ter 18:00,0.00,12/03`, lines[2])
}

func TestSaveByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.CSV")
	require.NoError(t, Save(activities, csvPath))
	content, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "category,"))

	jsonPath := filepath.Join(dir, "out.txt")
	require.NoError(t, Save(activities, jsonPath))
	content, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "["))

	assert.Error(t, Save(activities, filepath.Join(dir, "missing", "out.json")))
}

const page = `<html><head><script>var x = 1;</script><style>td{}</style></head><body>
<table class="table table-bordered" id="t1" onclick="go()">
<tr><td style="background-color: #153975" colspan="4">Natação</td></tr>
<tr class="text-center"><td>Iniciante</td><td>Seg<br>Qua</td><td>R$ 100,00</td><td>10/03</td></tr>
</table>
<a href="/extensao/info" onclick="x()">Mais informações</a>
</body></html>`

func TestCleanHTML(t *testing.T) {
	cleaned, err := CleanHTML(page)
	require.NoError(t, err)

	assert.NotContains(t, cleaned, "<script")
	assert.NotContains(t, cleaned, "<style")
	assert.NotContains(t, cleaned, "onclick")
	assert.NotContains(t, cleaned, `id="t1"`)
	assert.Contains(t, cleaned, `class="table table-bordered"`)
	assert.Contains(t, cleaned, `style="background-color: #153975"`)
	assert.Contains(t, cleaned, `colspan="4"`)
	assert.Contains(t, cleaned, `href="/extensao/info"`)
}

func TestToMarkdown(t *testing.T) {
	mdStr, err := ToMarkdown(page, "https://sistemas.fef.unicamp.br/extensao/registrations/showOpenRegistrations/26")
	require.NoError(t, err)

	assert.Contains(t, mdStr, "Natação")
	assert.Contains(t, mdStr, "R$ 100,00")
	assert.Contains(t, mdStr, "[Mais informações](https://sistemas.fef.unicamp.br/extensao/info)")
	assert.NotContains(t, mdStr, "var x")
}

func TestSavePageDumps(t *testing.T) {
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "debug_output.html")
	require.NoError(t, SaveHTML(page, htmlPath))
	content, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, page, string(content))

	mdPath := filepath.Join(dir, "debug_output.md")
	require.NoError(t, SaveMarkdown(page, "https://example.com/", mdPath))
	content, err = os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Iniciante")
}
