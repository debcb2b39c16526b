// Package job runs background tasks on River, a Postgres-backed queue.
//
// A task is any type with Name and Handle methods; the payload type is
// taken from Handle:
//
//	type SendWelcomeEmail struct{ mailer *mailer.Mailer }
//
//	func (t *SendWelcomeEmail) Name() string { return "send_welcome_email" }
//	func (t *SendWelcomeEmail) Handle(ctx context.Context, p WelcomePayload) error { ... }
//
// Periodic tasks add a Schedule method returning a cron expression and
// take no payload. All tasks share one river job kind and are dispatched
// by name, so adding a task needs no river worker boilerplate.
//
//	m, err := job.NewManager(pool,
//		job.WithLogger(log),
//		job.WithTask(tasks.NewSendWelcomeEmail(mail)),
//		job.WithScheduledTask(tasks.NewCleanupSessions(store)),
//	)
//	err = m.Enqueue(ctx, "send_welcome_email", payload, job.MaxAttempts(5))
package job
