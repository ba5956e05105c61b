package scheduler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gobwas/glob"

	"github.com/watzon/quando/internal/metrics"
)

// Registry owns a set of named jobs. Jobs are added stopped; control
// operations address them individually by name or in bulk by glob pattern.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		jobs: make(map[string]*Job),
	}
}

// Add registers a job. Names are unique; adding a duplicate is an error.
func (r *Registry) Add(job *Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[job.Name()]; exists {
		return fmt.Errorf("job %q already registered", job.Name())
	}
	r.jobs[job.Name()] = job
	metrics.SetJobsRegistered(len(r.jobs))
	return nil
}

// Get returns the job with the given name.
func (r *Registry) Get(name string) (*Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[name]
	return job, ok
}

// Remove stops the job and deletes it from the registry.
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("job %q not registered", name)
	}
	job.Stop()
	delete(r.jobs, name)
	metrics.SetJobsRegistered(len(r.jobs))
	return nil
}

// Len returns the number of registered jobs.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Jobs returns the registered jobs sorted by name.
func (r *Registry) Jobs() []*Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]*Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, k int) bool {
		return jobs[i].Name() < jobs[k].Name()
	})
	return jobs
}

// StartMatching starts every job whose name matches the glob pattern and
// returns the number of jobs addressed. Already-running jobs are unchanged
// (Start is idempotent).
func (r *Registry) StartMatching(pattern string) (int, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return 0, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	count := 0
	for _, job := range r.Jobs() {
		if g.Match(job.Name()) {
			job.Start()
			count++
		}
	}
	return count, nil
}

// StartAll starts every registered job.
func (r *Registry) StartAll() int {
	jobs := r.Jobs()
	for _, job := range jobs {
		job.Start()
	}
	return len(jobs)
}

// StopAll stops every registered job.
func (r *Registry) StopAll() int {
	jobs := r.Jobs()
	for _, job := range jobs {
		job.Stop()
	}
	return len(jobs)
}

// PauseAll pauses every running job.
func (r *Registry) PauseAll() {
	for _, job := range r.Jobs() {
		job.Pause()
	}
}

// ResumeAll resumes every paused job.
func (r *Registry) ResumeAll() {
	for _, job := range r.Jobs() {
		job.Resume()
	}
}
