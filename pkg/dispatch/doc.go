// Package dispatch sends one message template to a recipient set through
// the provider selected in settings.
//
//	report, err := dispatch.Dispatch(ctx, set, "October news", body, s,
//		dispatch.WithProgress(func(p mailer.Progress) {
//			fmt.Println(p.Message)
//		}),
//	)
//
// Only the active provider is validated. Invalid settings fail the same way
// an unreachable server does, with a *mailer.ConnectionError and a report
// with no attempts. Every dispatch gets a UUID that is stored in the
// context for log correlation and returned in the report.
package dispatch
