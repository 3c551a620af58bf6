/*
Package svcrepo is a runtime service registry.

A service is a named, lazily constructed value advertised against a
capability: the type (usually an interface) every instance must satisfy.
Each service has a [Supplier] that either builds a new instance on every
call, or builds one shared singleton instance the first time it is needed
and keeps it until it is disposed.

Services are described with a [Builder]:

	greeter := svcrepo.For[Greeter]().
		Name("greeter").
		Singleton(true).
		Implementation(ctor.MustOf[*EnglishGreeter](NewEnglishGreeter)).
		Args("Hello").
		MustBuild()

	g, err := svcrepo.Get[Greeter](greeter)

A [Registry] holds the services of an application in order, and drives them
through [Startup], [Shutdown] and [Reset]:

	r, err := svcrepo.NewRegistry(
		svcrepo.WithLogger(logger),
		svcrepo.WithServices(greeter, store),
	)
	if err != nil {
		return err
	}
	defer r.Close(ctx)

	if err := r.Startup(); err != nil {
		return err
	}

	g, err := svcrepo.Resolve[Greeter](r, "greeter")

Singleton instances that implement Close, in any of the forms accepted by
[Closer], are closed when they are disposed.
*/
package svcrepo
