// Package bootstrap runs a service's lifecycle: typed configuration,
// component registration, startup and shutdown hooks, and graceful stop on
// SIGINT/SIGTERM.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*AppConfig]) error {
//	    return a.RegisterComponent(serverComponent)
//	})
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Components start in registration order and stop in reverse. After startup
// a summary of components, routes and live health is printed.
package bootstrap
