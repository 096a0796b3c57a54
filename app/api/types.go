package api

import (
	"context"

	"github.com/secondbrain-labs/secondbrain/app/database"
	"github.com/secondbrain-labs/secondbrain/app/events"
	"github.com/secondbrain-labs/secondbrain/app/pipeline"
	"github.com/secondbrain-labs/secondbrain/app/search"
)

type PipelineRunnerInterface interface {
	Run(ctx context.Context, pageURL string) (*pipeline.RunResult, error)
}

var _ PipelineRunnerInterface = (*pipeline.Poller)(nil)

type FallbackExtractorInterface interface {
	Run(ctx context.Context, pageURL string) (string, error)
}

var _ FallbackExtractorInterface = (*pipeline.LocalExtractor)(nil)

type MailerInterface interface {
	SendInvitation(invitation events.Invitation) (string, error)
}

var _ MailerInterface = (*events.Mailer)(nil)

type Handler struct {
	pageRepo  database.PageRepository
	poller    PipelineRunnerInterface
	fallback  FallbackExtractorInterface
	extractor *search.Extractor
	searcher  *search.Searcher
	chat      *search.Chat
	mailer    MailerInterface
}
