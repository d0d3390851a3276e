package journal

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldworks/cyclic/internal/interp"
)

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "journal.db")
}

// emptyJournalDB creates a journal database with the schema applied and
// no runs recorded.
func emptyJournalDB(t *testing.T) string {
	t.Helper()
	path := tempDB(t)
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(schemaSQL)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	return path
}

// TestJournal_RecordAndRead verifies creates and executes round-trip
// through sqlite in logical clock order.
func TestJournal_RecordAndRead(t *testing.T) {
	path := tempDB(t)

	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()
	require.NotEmpty(t, j.RunID())

	in := interp.New(interp.WithRecorder(j))
	require.NoError(t, in.CreateField("plant", 100, 2.5, [3]float64{1, 0, 0}))
	_, err = in.Execute("∮regenerate(plant, 20)")
	require.NoError(t, err)
	_, err = in.Execute("garbage")
	require.Error(t, err)

	events, err := j.Events(j.RunID())
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "create", events[0].Type)
	assert.Equal(t, "plant", events[0].Name)
	assert.Equal(t, 100.0, events[0].Energy)
	assert.Equal(t, 2.5, events[0].Frequency)
	assert.Equal(t, [3]float64{1, 0, 0}, events[0].Position)

	assert.Equal(t, "execute", events[1].Type)
	assert.Equal(t, "∮regenerate(plant, 20)", events[1].Command)
	assert.Equal(t, interp.KindOK, events[1].Status)

	assert.Equal(t, interp.KindSyntax, events[2].Status)

	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Seq, events[i-1].Seq)
	}
}

// TestJournal_RunsAndLatest verifies run listing across sessions on the
// same database.
func TestJournal_RunsAndLatest(t *testing.T) {
	path := tempDB(t)

	first, err := Open(path)
	require.NoError(t, err)
	firstID := first.RunID()
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	secondID := second.RunID()
	defer second.Close()

	runs, err := second.Runs()
	require.NoError(t, err)
	assert.Equal(t, []string{firstID, secondID}, runs)

	latest, err := second.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, secondID, latest)
}

// TestJournal_LatestRunEmpty verifies the empty-journal error.
func TestJournal_LatestRunEmpty(t *testing.T) {
	j, err := OpenReadOnly(emptyJournalDB(t))
	require.NoError(t, err)
	defer j.Close()

	_, err = j.LatestRun()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runs")
}

// TestOpenReadOnly verifies the replay handle cannot write the database
// and that a missing database is an error rather than created.
func TestOpenReadOnly(t *testing.T) {
	path := tempDB(t)
	j, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, j.Close())

	ro, err := OpenReadOnly(path)
	require.NoError(t, err)
	defer ro.Close()
	assert.Empty(t, ro.RunID())

	require.Error(t, ro.RecordExecute(1, "∂decay(x, 0.1)", interp.KindOK))

	missing := filepath.Join(t.TempDir(), "missing.db")
	_, err = OpenReadOnly(missing)
	require.Error(t, err)
	assert.NoFileExists(t, missing)
}

// TestReplay_Reproduces verifies a journaled run replays to identical
// final state through the normal execution path.
func TestReplay_Reproduces(t *testing.T) {
	path := tempDB(t)

	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()

	in := interp.New(interp.WithRecorder(j))
	require.NoError(t, in.CreateField("sun", 300, 1.0, [3]float64{}))
	require.NoError(t, in.CreateField("planet", 150, 2.0, [3]float64{}))
	for _, cmd := range []string{
		"∇F(sun↔planet)|∂E/∂t=0",
		"∮regenerate(planet, 30)",
		"∂decay(sun, 0.05)",
		"~(sun ≈ planet)",
		"∂phase(planet, ghost_state)", // recorded rejection
	} {
		_, _ = in.Execute(cmd)
	}

	replayed, stats, err := j.Replay(j.RunID())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Creates)
	assert.Equal(t, 5, stats.Commands)

	assert.Equal(t, in.ListFields(), replayed.ListFields())
	assert.Equal(t, in.TotalEnergy(), replayed.TotalEnergy())
}

// TestReplay_Divergence verifies a journal that disagrees with the code
// is reported with its position.
func TestReplay_Divergence(t *testing.T) {
	path := tempDB(t)

	j, err := Open(path)
	require.NoError(t, err)
	defer j.Close()

	// A command recorded as ok that must fail on replay: the field was
	// never journaled as created.
	require.NoError(t, j.RecordExecute(1, "∂decay(phantom, 0.1)", interp.KindOK))

	_, _, err = j.Replay(j.RunID())
	require.Error(t, err)

	var div *DivergenceError
	require.ErrorAs(t, err, &div)
	assert.Equal(t, int64(1), div.Seq)
	assert.Equal(t, interp.KindOK, div.Recorded)
	assert.Equal(t, interp.KindUnknownField, div.Replayed)
}
