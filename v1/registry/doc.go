// Package registry provides an admin client for Confluent Schema Registry.
//
// The client covers the read and delete surface that schema governance
// needs: subject listings (with or without soft-deleted subjects), version
// retrieval, compatibility configuration, and subject/version deletion in
// both soft and permanent flavors. Registration, compatibility testing and
// message serialization are out of scope; this client administers a
// registry, it does not produce to one.
//
// Basic Usage:
//
//	import "github.com/stackmill/schemawarden/v1/registry"
//
//	client, err := registry.NewClient(registry.Config{
//	    URL:       "https://psrc-xxxxx.eu-central-1.aws.confluent.cloud",
//	    APIKey:    "key",    // Optional
//	    APISecret: "secret", // Optional
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	subjects, err := client.ListSubjects(ctx, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	latest, err := client.GetLatestVersion(ctx, "orders-value")
//	if registry.IsNotFound(err) {
//	    // subject does not exist — usually benign for audits
//	}
//
//	// Soft delete, then permanently remove
//	versions, err := client.DeleteSubject(ctx, "orders-value", false)
//	versions, err = client.DeleteSubject(ctx, "orders-value", true)
//
// Using with FX:
//
//	app := fx.New(
//	    registry.FXModule,
//	    fx.Provide(
//	        func() registry.Config {
//	            return registry.Config{
//	                URL:       os.Getenv("SCHEMA_REGISTRY_URL"),
//	                APIKey:    os.Getenv("SCHEMA_REGISTRY_API_KEY"),
//	                APISecret: os.Getenv("SCHEMA_REGISTRY_API_SECRET"),
//	            }
//	        },
//	    ),
//	    // Your application code that uses registry.Registry
//	)
//
// Error Handling:
//
// Every non-200 response becomes an *APIError carrying the HTTP status and
// an excerpt of the response body. 404 responses additionally match the
// ErrNotFound sentinel through errors.Is, so "subject is absent" can be
// distinguished from "registry is broken" without string matching:
//
//	_, err := client.GetSubjectConfig(ctx, subject)
//	switch {
//	case registry.IsNotFound(err):
//	    // no subject-level override, fall back to global config
//	case err != nil:
//	    return err
//	}
//
// Credentials are sent as HTTP basic auth. The secret is held in memory
// only; it never appears in errors or logs.
//
// Timeouts and Retries:
//
// Each request runs under the client's fixed timeout (10s by default) plus
// whatever deadline the caller's context carries. The client never retries;
// retry policy belongs to the caller.
package registry
