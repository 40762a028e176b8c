package usecases

import (
	"context"

	"ta7wila/internal/domain/payment"
	vo "ta7wila/internal/domain/payment/valueobjects"
	"ta7wila/internal/domain/store"
	"ta7wila/internal/infrastructure/channelcatalog"
	apperrors "ta7wila/internal/shared/errors"
	"ta7wila/internal/shared/logger"
	"ta7wila/internal/shared/services/markdown"
)

type GetCheckoutCommand struct {
	Slug string
	// AcceptLanguage is the raw Accept-Language header of the visitor.
	AcceptLanguage string
}

// CheckoutChannel is one payment channel offered on the public page, with its
// destinations and a display name in the visitor's language.
type CheckoutChannel struct {
	Key          vo.ChannelKey
	Kind         string
	DisplayName  string
	Destinations []CheckoutDestination
}

type CheckoutDestination struct {
	SID   string
	Value string
}

type GetCheckoutResult struct {
	StoreName string
	StoreSID  string
	// InstructionsHTML is the merchant's payment instructions rendered from
	// markdown and sanitized for embedding.
	InstructionsHTML string
	Language         string
	Channels         []CheckoutChannel
}

// GetCheckoutUseCase assembles the public checkout page for a store: active
// destinations grouped by channel, channel names localized from the visitor's
// Accept-Language header.
type GetCheckoutUseCase struct {
	storeRepo       store.Repository
	destinationRepo payment.DestinationRepository
	catalog         *channelcatalog.Catalog
	markdown        markdown.MarkdownService
	logger          logger.Interface
}

func NewGetCheckoutUseCase(
	storeRepo store.Repository,
	destinationRepo payment.DestinationRepository,
	catalog *channelcatalog.Catalog,
	md markdown.MarkdownService,
	log logger.Interface,
) *GetCheckoutUseCase {
	return &GetCheckoutUseCase{
		storeRepo:       storeRepo,
		destinationRepo: destinationRepo,
		catalog:         catalog,
		markdown:        md,
		logger:          log,
	}
}

func (uc *GetCheckoutUseCase) Execute(ctx context.Context, cmd GetCheckoutCommand) (*GetCheckoutResult, error) {
	st, err := uc.storeRepo.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		return nil, err
	}
	if !st.IsActive() {
		return nil, apperrors.NewNotFoundError("store not found")
	}

	tag := uc.catalog.MatchLanguage(cmd.AcceptLanguage)

	channels := make([]CheckoutChannel, 0, len(st.PaymentOptions()))
	for _, key := range st.PaymentOptions() {
		entry, ok := uc.catalog.Get(key)
		if !ok {
			continue
		}

		dests, err := uc.destinationRepo.ListByApplicationAndChannel(ctx, st.DBID(), key)
		if err != nil {
			return nil, err
		}
		if len(dests) == 0 {
			continue
		}

		ch := CheckoutChannel{
			Key:         key,
			Kind:        entry.Kind,
			DisplayName: entry.DisplayName(tag),
		}
		for _, d := range dests {
			ch.Destinations = append(ch.Destinations, CheckoutDestination{
				SID:   d.SID(),
				Value: d.Value(),
			})
		}
		channels = append(channels, ch)
	}

	instructions := ""
	if st.Instructions() != "" {
		instructions, err = uc.markdown.ToHTMLSanitized(st.Instructions())
		if err != nil {
			uc.logger.Warnw("failed to render store instructions", "error", err, "store_sid", st.SID())
			instructions = ""
		}
	}

	base, _ := tag.Base()
	return &GetCheckoutResult{
		StoreName:        st.Name(),
		StoreSID:         st.SID(),
		InstructionsHTML: instructions,
		Language:         base.String(),
		Channels:         channels,
	}, nil
}
