package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

type taskCounter interface {
	CountByState(ctx context.Context) (map[domain.TaskState]int, error)
}

type userCounter interface {
	Count(ctx context.Context) (int, error)
}

// Collector periodically refreshes gauges with the number of users and
// the number of tasks in each state.
type Collector struct {
	tasks   taskCounter
	users   userCounter
	spec    string
	timeout time.Duration
	logger  *slog.Logger

	tasksByState *prometheus.GaugeVec
	usersTotal   prometheus.Gauge
}

// NewCollector validates spec (standard cron or "@every <duration>") and
// registers the gauges on reg.
func NewCollector(tasks taskCounter, users userCounter, spec string, logger *slog.Logger, reg prometheus.Registerer) (*Collector, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parse stats schedule %q: %w", spec, err)
	}

	c := &Collector{
		tasks:   tasks,
		users:   users,
		spec:    spec,
		timeout: 10 * time.Second,
		logger:  logger.With("component", "stats"),
		tasksByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "taskapi",
			Name:      "tasks",
			Help:      "Number of tasks, by state.",
		}, []string{"state"}),
		usersTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "taskapi",
			Name:      "users",
			Help:      "Number of registered users.",
		}),
	}
	reg.MustRegister(c.tasksByState, c.usersTotal)
	return c, nil
}

// Start collects once, then on every tick of the schedule until ctx is done.
func (c *Collector) Start(ctx context.Context) {
	sched := cron.New()
	if _, err := sched.AddFunc(c.spec, func() { c.Collect(ctx) }); err != nil {
		c.logger.Error("schedule stats collection", "error", err)
		return
	}

	c.Collect(ctx)
	sched.Start()
	c.logger.Info("stats collector started", "schedule", c.spec)

	<-ctx.Done()
	<-sched.Stop().Done()
	c.logger.Info("stats collector shut down")
}

// Collect refreshes every gauge once. Failures are logged and leave the
// previous values in place.
func (c *Collector) Collect(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	counts, err := c.tasks.CountByState(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "count tasks by state", "error", err)
	} else {
		// States with no rows are reported as 0, not dropped.
		for _, state := range domain.TaskStates {
			c.tasksByState.WithLabelValues(string(state)).Set(float64(counts[state]))
		}
	}

	users, err := c.users.Count(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "count users", "error", err)
		return
	}
	c.usersTotal.Set(float64(users))
}
