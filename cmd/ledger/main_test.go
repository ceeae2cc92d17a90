package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pocket-ledger/internal/cli"
	"github.com/Veraticus/pocket-ledger/internal/common"
	"github.com/Veraticus/pocket-ledger/internal/snapshot"
)

type testEnv struct {
	t      *testing.T
	dir    string
	dbPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	return &testEnv{t: t, dir: dir, dbPath: filepath.Join(dir, "ledger.db")}
}

// run executes one ledger invocation against the env's database, feeding
// stdin to prompts.
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--db", e.dbPath, "--log-level", "error"}, args...))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err, out)
	return out
}

func (e *testEnv) export() snapshot.Document {
	e.t.Helper()
	out := e.mustRun("export", "--out", "-")

	var doc snapshot.Document
	require.NoError(e.t, json.Unmarshal([]byte(out), &doc))
	return doc
}

func TestRecordLifecycle(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("record", "add", "32.5", "-c", "food", "-a", "wechat", "-n", "lunch", "-d", "2024-05-03")
	assert.Contains(t, out, "Saved expense ¥32.50 on 2024-05-03")
	env.mustRun("record", "add", "8000", "-t", "income", "-c", "salary", "-a", "bank", "-d", "2024-05-01")

	out = env.mustRun("record", "list", "--month", "2024-05")
	assert.Contains(t, out, "2024-05-03")
	assert.Contains(t, out, "lunch")
	assert.Contains(t, out, "+¥8,000.00")

	doc := env.export()
	require.Len(t, doc.Records, 2)
	lunch := doc.Records[0]
	assert.Equal(t, "lunch", lunch.Note)

	env.mustRun("record", "edit", lunch.ID, "--amount", "40")
	doc = env.export()
	require.Len(t, doc.Records, 2)
	assert.Equal(t, lunch.ID, doc.Records[0].ID)
	assert.Equal(t, "40", doc.Records[0].Amount.String())
	assert.Equal(t, "lunch", doc.Records[0].Note)
	assert.Equal(t, lunch.CreatedAt, doc.Records[0].CreatedAt)

	env.mustRun("record", "delete", lunch.ID, "--force")
	doc = env.export()
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "salary", doc.Records[0].CategoryID)

	out = env.mustRun("record", "delete", lunch.ID, "--force")
	assert.Contains(t, out, "nothing to delete")
}

func TestRecordAdd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "zero amount", args: []string{"record", "add", "0", "-c", "food"}},
		{name: "not a number", args: []string{"record", "add", "lots", "-c", "food"}},
		{name: "missing category", args: []string{"record", "add", "12"}},
		{name: "bad type", args: []string{"record", "add", "12", "-c", "food", "-t", "transfer"}},
		{name: "bad date", args: []string{"record", "add", "12", "-c", "food", "-d", "03/05/2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			_, err := env.run("", tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)
			assert.Empty(t, env.export().Records)
		})
	}
}

func TestRecordEdit_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "record", "edit", "missing", "--amount", "5")
	require.Error(t, err)
	assert.Equal(t, "record missing not found", common.UserMessage(err))
	assert.Empty(t, env.export().Records)
}

func TestCategoryDelete(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("record", "add", "15", "-c", "pet", "-d", "2024-05-10")

	out, err := env.run("n\n", "category", "delete", "pet")
	require.ErrorIs(t, err, cli.ErrNotConfirmed)
	assert.Contains(t, out, "1 records use Pets")
	assert.Contains(t, env.mustRun("category", "list"), "Pets")

	env.mustRun("category", "delete", "pet", "--force")
	assert.NotContains(t, env.mustRun("category", "list"), "Pets")

	out = env.mustRun("record", "list", "--month", "2024-05")
	assert.Contains(t, out, "Unknown")
	assert.Len(t, env.export().Records, 1)
}

func TestCategoryAdd(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("category", "add", "Coffee", "-i", "☕")
	assert.Contains(t, out, "Created expense category ☕ Coffee")

	_, err := env.run("", "category", "add", "Coffee")
	assert.ErrorIs(t, err, common.ErrValidation)

	env.mustRun("category", "add", "Coffee", "-t", "income")

	out = env.mustRun("category", "list", "-t", "income")
	assert.Contains(t, out, "Coffee")
	assert.Contains(t, out, "Salary")
	assert.NotContains(t, out, "Food")
}

func TestBudget(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("budget", "show", "--month", "2024-05")
	assert.Contains(t, out, "No budget set")

	out = env.mustRun("budget", "set", "1000")
	assert.Contains(t, out, "Budget set to ¥1,000.00")

	env.mustRun("record", "add", "1200", "-c", "housing", "-d", "2024-05-02")
	out = env.mustRun("budget", "show", "--month", "2024-05")
	assert.Contains(t, out, "120.0%")
	assert.Contains(t, out, "over by ¥200.00")

	out = env.mustRun("budget", "set", "abc")
	assert.Contains(t, out, "Budget cleared")
	assert.True(t, env.export().Budget.Amount.IsZero())
}

func TestSummary(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("budget", "set", "2000")
	env.mustRun("record", "add", "300", "-c", "food", "-d", "2024-05-02")
	env.mustRun("record", "add", "100", "-c", "transport", "-d", "2024-05-03")
	env.mustRun("record", "add", "5000", "-t", "income", "-c", "salary", "-d", "2024-05-01")
	env.mustRun("record", "add", "999", "-c", "food", "-d", "2024-06-01")

	out := env.mustRun("summary", "--month", "2024-05")
	assert.Contains(t, out, "¥5,000.00")
	assert.Contains(t, out, "¥400.00")
	assert.Contains(t, out, "¥4,600.00")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "25.0%")
	assert.Contains(t, out, "¥1,600.00 left")
	assert.NotContains(t, out, "999")
}

func TestExportImport(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("record", "add", "20", "-c", "food", "-d", "2024-05-02")
	env.mustRun("budget", "set", "500")

	backup := filepath.Join(env.dir, "backup.json")
	out := env.mustRun("export", "--out", backup)
	assert.Contains(t, out, "Exported 1 records")
	before := env.export()

	raw, err := os.ReadFile(backup)
	require.NoError(t, err)
	var backupDoc snapshot.Document
	require.NoError(t, json.Unmarshal(raw, &backupDoc))
	require.NotEmpty(t, backupDoc.ExportTime)

	env.mustRun("record", "add", "70", "-c", "travel", "-d", "2024-05-04")
	env.mustRun("budget", "set", "0")

	out, err = env.run("y\n", "import", backup)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Backup exported at "+backupDoc.ExportTime)
	assert.Contains(t, out, "records with 1 entries")
	assert.Contains(t, out, "Imported budget (1)")

	checkpoints, err := filepath.Glob(filepath.Join(env.dir, "checkpoints", "auto-import-*.db"))
	require.NoError(t, err)
	assert.Len(t, checkpoints, 1)

	after := env.export()
	require.Len(t, after.Records, 1)
	assert.Equal(t, before.Records[0].ID, after.Records[0].ID)
	assert.Equal(t, "500", after.Budget.Amount.String())
	assert.Equal(t, before.Categories, after.Categories)
}

func TestImport_PartialDocument(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("record", "add", "20", "-c", "food", "-d", "2024-05-02")

	path := filepath.Join(env.dir, "budget.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"budget":{"amount":750},"records":"oops"}`), 0o600))

	out := env.mustRun("import", path, "--force")
	assert.Contains(t, out, "Skipping records")

	doc := env.export()
	assert.Len(t, doc.Records, 1)
	assert.Equal(t, "750", doc.Budget.Amount.String())
}

func TestImport_NotADocument(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "list.json")
	require.NoError(t, os.WriteFile(path, []byte(`[1, 2, 3]`), 0o600))

	_, err := env.run("", "import", path, "--force")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrFormat)
}

func TestImport_Declined(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("budget", "set", "300")

	path := filepath.Join(env.dir, "budget.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"budget":{"amount":10}}`), 0o600))

	_, err := env.run("no\n", "import", path)
	require.ErrorIs(t, err, cli.ErrNotConfirmed)
	assert.Equal(t, "300", env.export().Budget.Amount.String())
}

func TestExport_Workbook(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("record", "add", "20", "-c", "food", "-d", "2024-05-02")

	path := filepath.Join(env.dir, "report.xlsx")
	env.mustRun("export", "--xlsx", "--month", "2024-05", "--out", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}

const statementOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240531120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240501120000[0:GMT]
<DTEND>20240531120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240504120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024050401
<NAME>Corner Bakery
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240515120000[0:GMT]
<TRNAMT>3000.00
<FITID>2024051501
<NAME>Payroll
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240531120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestImportOFX(t *testing.T) {
	env := newTestEnv(t)

	path := filepath.Join(env.dir, "may.ofx")
	require.NoError(t, os.WriteFile(path, []byte(statementOFX), 0o600))

	out := env.mustRun("import-ofx", path, "--dry-run")
	assert.Contains(t, out, "2 would be added")
	assert.Empty(t, env.export().Records)

	out = env.mustRun("import-ofx", path, "--account", "credit")
	assert.Contains(t, out, "Added 2 records")

	doc := env.export()
	require.Len(t, doc.Records, 2)
	for _, rec := range doc.Records {
		assert.Equal(t, "credit", rec.AccountID)
	}

	out = env.mustRun("import-ofx", path)
	assert.Contains(t, out, "Added 0 records (2 already present")
	assert.Len(t, env.export().Records, 2)
}

func TestMigrateStatus(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 0")

	env.mustRun("migrate")
	out = env.mustRun("migrate", "--status")
	assert.Contains(t, out, "Current version: 2")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	assert.Contains(t, env.mustRun("version"), "ledger dev")
}
