package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func addJob(t *testing.T, registry *Registry, name string) *Job {
	t.Helper()

	job, err := NewJob(name, "0 0 1 1 *", func() {})
	require.NoError(t, err)
	require.NoError(t, registry.Add(job))
	t.Cleanup(job.Stop)
	return job
}

func TestRegistry_AddAndGet(t *testing.T) {
	registry := NewRegistry()
	job := addJob(t, registry, "backup")

	got, ok := registry.Get("backup")
	require.True(t, ok)
	require.Same(t, job, got)
	require.Equal(t, 1, registry.Len())

	_, ok = registry.Get("missing")
	require.False(t, ok)
}

func TestRegistry_DuplicateName(t *testing.T) {
	registry := NewRegistry()
	addJob(t, registry, "backup")

	dup, err := NewJob("backup", "* * * * *", func() {})
	require.NoError(t, err)
	require.Error(t, registry.Add(dup))
	require.Equal(t, 1, registry.Len())
}

func TestRegistry_RemoveStopsJob(t *testing.T) {
	registry := NewRegistry()
	job := addJob(t, registry, "backup")
	job.Start()

	require.NoError(t, registry.Remove("backup"))
	require.Equal(t, StatusIdle, job.Status())
	require.Equal(t, 0, registry.Len())

	require.Error(t, registry.Remove("backup"))
}

func TestRegistry_JobsSortedByName(t *testing.T) {
	registry := NewRegistry()
	addJob(t, registry, "charlie")
	addJob(t, registry, "alpha")
	addJob(t, registry, "bravo")

	jobs := registry.Jobs()
	require.Len(t, jobs, 3)
	require.Equal(t, "alpha", jobs[0].Name())
	require.Equal(t, "bravo", jobs[1].Name())
	require.Equal(t, "charlie", jobs[2].Name())
}

func TestRegistry_StartMatching(t *testing.T) {
	registry := NewRegistry()
	dbBackup := addJob(t, registry, "db-backup")
	dbVacuum := addJob(t, registry, "db-vacuum")
	report := addJob(t, registry, "report")

	count, err := registry.StartMatching("db-*")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	require.Equal(t, StatusRunning, dbBackup.Status())
	require.Equal(t, StatusRunning, dbVacuum.Status())
	require.Equal(t, StatusIdle, report.Status())
}

func TestRegistry_StartMatchingBadPattern(t *testing.T) {
	registry := NewRegistry()
	addJob(t, registry, "backup")

	_, err := registry.StartMatching("[")
	require.Error(t, err)
}

func TestRegistry_BulkOperations(t *testing.T) {
	registry := NewRegistry()
	first := addJob(t, registry, "first")
	second := addJob(t, registry, "second")

	require.Equal(t, 2, registry.StartAll())
	require.Equal(t, StatusRunning, first.Status())
	require.Equal(t, StatusRunning, second.Status())

	registry.PauseAll()
	require.Equal(t, StatusPaused, first.Status())
	require.Equal(t, StatusPaused, second.Status())

	registry.ResumeAll()
	require.Equal(t, StatusRunning, first.Status())
	require.Equal(t, StatusRunning, second.Status())

	require.Equal(t, 2, registry.StopAll())
	require.Equal(t, StatusIdle, first.Status())
	require.Equal(t, StatusIdle, second.Status())
}
