package main

import (
	"fmt"

	"github.com/stackmill/schemawarden/v1/archive"
	"github.com/stackmill/schemawarden/v1/health"
	"github.com/stackmill/schemawarden/v1/lifecycle"
	"github.com/stackmill/schemawarden/v1/notify"
	"github.com/stackmill/schemawarden/v1/registry"
)

// One-shot commands construct their collaborators directly instead of
// through fx; they run a single operation and exit.

func newRegistryClient() (*registry.Client, error) {
	client, err := registry.NewClient(registryConfig())
	if err != nil {
		return nil, fmt.Errorf("create registry client: %w", err)
	}
	return client, nil
}

func newAuditor() (*health.Auditor, error) {
	client, err := newRegistryClient()
	if err != nil {
		return nil, err
	}
	auditor, err := health.NewAuditor(client, healthConfig())
	if err != nil {
		return nil, fmt.Errorf("create auditor: %w", err)
	}
	return auditor, nil
}

func newManager() (*lifecycle.Manager, error) {
	client, err := newRegistryClient()
	if err != nil {
		return nil, err
	}
	manager, err := lifecycle.NewManager(client, nil)
	if err != nil {
		return nil, fmt.Errorf("create lifecycle manager: %w", err)
	}
	return manager, nil
}

// newNotifier builds the configured notifier. Notification is
// advisory, so a backend that cannot be reached degrades to the no-op
// notifier instead of failing the command.
func newNotifier() notify.Notifier {
	notifier, err := notify.NewNotifierWithDI(notify.NotifierParams{Config: notifyConfig()})
	if err != nil {
		return notify.NopNotifier{}
	}
	return notifier
}

func newArchive() (archive.Archive, error) {
	store, err := archive.NewArchiveWithDI(archive.ArchiveParams{Config: archiveConfig()})
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	return store, nil
}
