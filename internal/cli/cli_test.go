package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/law-makers/activities/internal/app"
	"github.com/law-makers/activities/internal/config"
	"github.com/law-makers/activities/internal/engine"
	"github.com/law-makers/activities/internal/store"
)

const swimmingPage = `<html><body>
<table class="table table-bordered">
  <tr><td style="background-color: #153975">Swimming</td></tr>
  <tbody><tr class="text-center"><td>Beginner</td><td>Mon 10:00<br>Wed 10:00</td><td>R$ 100,00</td><td>10/03</td></tr></tbody>
</table>
<table class="table table-bordered"><tbody><tr><td>a</td><td>b</td><td>c</td><td>d</td></tr></tbody></table>
</body></html>`

var activityColumns = []string{"category", "class_name", "schedule", "cost", "enrollment_deadline"}

func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		config.EnvLogLevel, config.EnvURL, config.EnvUserAgent,
		config.EnvDBHost, config.EnvDBPort, config.EnvDBName, config.EnvDBUser, config.EnvDBPassword, config.EnvDBSSLMode,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("CI", "true")
	t.Setenv("NO_COLOR", "1")
}

// mockOpener returns a store opener backed by sqlmock. Expectations are
// checked when the test ends.
func mockOpener(t *testing.T) (app.StoreOpener, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return func(ctx context.Context, cfg config.Database) (*store.Store, error) {
		return store.New(sqlx.NewDb(db, store.DriverName)), nil
	}, mock
}

func noDatabase(t *testing.T) app.StoreOpener {
	return func(ctx context.Context, cfg config.Database) (*store.Store, error) {
		t.Fatal("database must not be opened")
		return nil, nil
	}
}

func runCLI(t *testing.T, opener app.StoreOpener, stdin string, args ...string) (string, error) {
	t.Helper()
	isolateEnv(t)

	root := NewRootCmd(app.WithStoreOpener(opener))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(stdin))

	args = append(args, "--env-file", filepath.Join(t.TempDir(), "none.env"), "-q")
	err := execute(context.Background(), root, args)
	return out.String(), err
}

func TestScrapeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(swimmingPage))
	}))
	defer srv.Close()

	opener, mock := mockOpener(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS activities").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM activities")).WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO activities")).
		ExpectExec().
		WithArgs("Swimming", "Beginner", "Mon 10:00 | Wed 10:00", 100.0, "10/03").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scraping_history")).
		WithArgs(1, "success", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectClose()

	out, err := runCLI(t, opener, "", "scrape", "--url", srv.URL, "--no-progress")
	require.NoError(t, err)
	assert.Contains(t, out, "Scraping completed successfully!")
	assert.Contains(t, out, "1 activities saved")
}

func TestScrapeFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	opener, mock := mockOpener(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS activities").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO scraping_history")).
		WithArgs(0, "failure", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectClose()

	out, err := runCLI(t, opener, "", "scrape", "--url", srv.URL)
	require.Error(t, err)
	assert.Equal(t, engine.ErrCodeFetch, engine.CodeOf(err))
	assert.Contains(t, out, "Scraping failed")
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(page, []byte(swimmingPage), 0o644))
	exported := filepath.Join(dir, "out.csv")

	out, err := runCLI(t, noDatabase(t), "", "parse", page, "--output", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 activities")
	assert.Contains(t, out, "Swimming (1 activities)")
	assert.Contains(t, out, "Schedule: Mon 10:00 | Wed 10:00")
	assert.Contains(t, out, "Average: R$ 100.00")

	content, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Swimming,Beginner,Mon 10:00 | Wed 10:00,100.00,10/03")
}

func TestParseEmptyAndMissing(t *testing.T) {
	page := filepath.Join(t.TempDir(), "empty.html")
	require.NoError(t, os.WriteFile(page, []byte("<html><body>Em manutenção</body></html>"), 0o644))

	out, err := runCLI(t, noDatabase(t), "", "parse", page)
	assert.ErrorIs(t, err, engine.ErrEmptyExtraction)
	assert.Contains(t, out, "No activities found")

	_, err = runCLI(t, noDatabase(t), "", "parse", filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestProbeDumpsPageWhenNothingFound(t *testing.T) {
	const page = `<html><body><table><tr><td>Página em manutenção</td></tr></table></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	dir := t.TempDir()
	_, err := runCLI(t, noDatabase(t), "", "probe", "--url", srv.URL, "--dump-dir", dir, "--markdown")
	assert.ErrorIs(t, err, engine.ErrEmptyExtraction)

	dumped, err := os.ReadFile(filepath.Join(dir, "debug_output.html"))
	require.NoError(t, err)
	assert.Equal(t, page, string(dumped))

	md, err := os.ReadFile(filepath.Join(dir, "debug_output.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "Página em manutenção")
}

func TestProbeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(swimmingPage))
	}))
	defer srv.Close()

	dir := t.TempDir()
	out, err := runCLI(t, noDatabase(t), "", "probe", "--url", srv.URL, "--dump-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Swimming (1 activities)")
	assert.NoFileExists(t, filepath.Join(dir, "debug_output.html"))
}

func TestListJSON(t *testing.T) {
	opener, mock := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY category, class_name")).
		WillReturnRows(sqlmock.NewRows(activityColumns).AddRow("Yoga", "Turma A", "Ter 18:00", 0.0, "12/03"))
	mock.ExpectClose()

	out, err := runCLI(t, opener, "", "list", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"class_name": "Turma A"`)
	assert.Contains(t, out, `"cost": 0`)
}

func TestListBeforeFirstScrape(t *testing.T) {
	opener, mock := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM activities")).
		WillReturnError(&pgconn.PgError{Code: "42P01", Message: `relation "activities" does not exist`})
	mock.ExpectClose()

	_, err := runCLI(t, opener, "", "list")
	assert.ErrorIs(t, err, errNoData)
}

func TestListInvalidFormat(t *testing.T) {
	opener, mock := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM activities")).WillReturnRows(sqlmock.NewRows(activityColumns))
	mock.ExpectClose()

	_, err := runCLI(t, opener, "", "list", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCategoryNotFound(t *testing.T) {
	opener, mock := mockOpener(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE category = $1")).WithArgs("Polo").
		WillReturnRows(sqlmock.NewRows(activityColumns))
	mock.ExpectClose()

	_, err := runCLI(t, opener, "", "category", "Polo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no activities in category "Polo"`)
}

func TestMenu(t *testing.T) {
	opener, mock := mockOpener(t)
	categories := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"category"}).AddRow("Natação").AddRow("Yoga")
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category")).WillReturnRows(categories())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category")).WillReturnRows(categories())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE category = $1")).WithArgs("Natação").
		WillReturnRows(sqlmock.NewRows(activityColumns).AddRow("Natação", "Iniciante", "Seg 10:00", 100.0, "10/03"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT category")).WillReturnRows(categories())
	mock.ExpectClose()

	// list categories, bad choice, pick category 1, bad category number, exit
	out, err := runCLI(t, opener, "4\n9\n2\n1\n2\n7\n5\n", "menu")
	require.NoError(t, err)

	assert.Contains(t, out, "FEF UNICAMP Activities Database Query Tool")
	assert.Contains(t, out, "All Categories:")
	assert.Contains(t, out, "Invalid choice. Please try again.")
	assert.Contains(t, out, "1. Natação")
	assert.Contains(t, out, "Activities in category: Natação")
	assert.Contains(t, out, "Invalid category number")
	assert.Contains(t, out, "Goodbye!")
}

func TestMenuEndOfInput(t *testing.T) {
	opener, mock := mockOpener(t)
	mock.ExpectClose()

	out, err := runCLI(t, opener, "", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter your choice (1-5)")
}

func TestHistoryRejectsBadLimit(t *testing.T) {
	_, err := runCLI(t, noDatabase(t), "", "history", "--limit", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--limit")
}

func TestPasswordSetAndDelete(t *testing.T) {
	keyring.MockInit()

	out, err := runCLI(t, noDatabase(t), "s3cret\n", "password", "set", "--user", "scraper")
	require.NoError(t, err)
	assert.Contains(t, out, "Password for 'scraper' saved")

	stored, err := keyring.Get(config.KeyringService, "scraper")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", stored)

	out, err = runCLI(t, noDatabase(t), "", "password", "delete", "--user", "scraper")
	require.NoError(t, err)
	assert.Contains(t, out, "removed from the keyring")

	_, err = keyring.Get(config.KeyringService, "scraper")
	assert.ErrorIs(t, err, keyring.ErrNotFound)

	_, err = runCLI(t, noDatabase(t), "", "password", "set")
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	out, err := runCLI(t, noDatabase(t), "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "ACTIVITIES")
	assert.Contains(t, out, "Commands")
	assert.Contains(t, out, "scrape")
	assert.Contains(t, out, "--env-file")
}

func TestWrapText(t *testing.T) {
	in := "one two three four five\n\n- item stays\nsix seven"
	got := wrapText(in, 9)
	assert.Equal(t, "one two\nthree\nfour five\n\n- item stays\nsix seven", got)
}
