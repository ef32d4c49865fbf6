package testfixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/example/recurrence-preview/internal/application"
	"github.com/example/recurrence-preview/internal/localization"
	"github.com/example/recurrence-preview/internal/recurrence"
)

type capturingConfigurationRepo struct {
	created application.StoredConfiguration
}

func (c *capturingConfigurationRepo) CreateConfiguration(ctx context.Context, stored application.StoredConfiguration) (application.StoredConfiguration, error) {
	c.created = stored
	return stored, nil
}

func (c *capturingConfigurationRepo) GetConfiguration(ctx context.Context, id string) (application.StoredConfiguration, error) {
	if c.created.ID != id {
		return application.StoredConfiguration{}, application.ErrNotFound
	}
	return c.created, nil
}

func (c *capturingConfigurationRepo) UpdateConfiguration(ctx context.Context, stored application.StoredConfiguration) (application.StoredConfiguration, error) {
	c.created = stored
	return stored, nil
}

func (c *capturingConfigurationRepo) DeleteConfiguration(ctx context.Context, id string) error {
	return nil
}

func (c *capturingConfigurationRepo) ListConfigurations(ctx context.Context) ([]application.StoredConfiguration, error) {
	return []application.StoredConfiguration{c.created}, nil
}

func TestServiceFactoryNewPreviewService(t *testing.T) {
	factory := NewServiceFactory()
	repo := &capturingConfigurationRepo{}

	svc := factory.NewPreviewService(PreviewServiceDeps{Configurations: repo})
	stored, err := svc.CreateConfiguration(context.Background(), application.CreateConfigurationParams{
		Input: application.ConfigurationInput{Name: "Standup", Configuration: WeeklyConfiguration()},
	})
	if err != nil {
		t.Fatalf("CreateConfiguration returned error: %v", err)
	}

	if stored.ID != "cfg-1" {
		t.Fatalf("expected generated ID cfg-1, got %q", stored.ID)
	}
	if repo.created.ID != stored.ID {
		t.Fatalf("repository received unexpected ID: %q", repo.created.ID)
	}
	if !stored.CreatedAt.Equal(factory.Clock.Peek()) {
		t.Fatalf("expected timestamp %v, got %v", factory.Clock.Peek(), stored.CreatedAt)
	}

	preview, err := svc.PreviewStored(context.Background(), application.PreviewStoredParams{ConfigurationID: stored.ID})
	if err != nil {
		t.Fatalf("PreviewStored returned error: %v", err)
	}
	if len(preview.Outputs) != 8 {
		t.Fatalf("expected 8 occurrences, got %d", len(preview.Outputs))
	}
}

func TestServiceFactoryUsesTranslator(t *testing.T) {
	custom := localization.NewCatalog(localization.Overrides{
		localization.EnglishGB: {localization.KeyErrMissingConfiguration: "nothing to preview"},
	})
	factory := NewServiceFactory(WithTranslator(custom))

	_, err := factory.NewPreviewService(PreviewServiceDeps{}).Preview(context.Background(), application.PreviewParams{})
	var sErr *recurrence.ScheduleError
	if !errors.As(err, &sErr) {
		t.Fatalf("expected a schedule error, got %v", err)
	}
	if got := sErr.Message(factory.Translator, localization.EnglishGB); got != "nothing to preview" {
		t.Fatalf("message = %q", got)
	}
}
