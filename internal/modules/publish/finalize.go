package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/types"
)

// maxTokenRetries bounds the collision loop. Hitting it means the token
// space is effectively full, which is an environment problem.
const maxTokenRetries = 1000000

// incrementVersion bumps the channel version exactly once per successful
// publish, paired with the publish timestamp.
func (p *Publisher) incrementVersion(ctx context.Context, tx *gorm.DB, channel *types.Channel) error {
	channel.Version++
	now := time.Now()
	channel.LastPublished = &now
	return p.channels.Save(ctx, tx, channel)
}

// ensureTokens makes sure the channel carries its two distribution tokens:
// one random pronounceable primary token and one equal to the channel id.
// Idempotent; a channel that already has a primary token is left alone.
func (p *Publisher) ensureTokens(ctx context.Context, tx *gorm.DB, channel *types.Channel) error {
	has, err := p.channels.HasPrimaryToken(ctx, tx, channel.ID)
	if err != nil {
		return err
	}
	if has {
		return nil
	}
	p.log.Info("Generating tokens for the channel", "channel_id", channel.ID)

	token, err := GenerateToken()
	if err != nil {
		return err
	}
	for attempt := 0; ; attempt++ {
		exists, err := p.tokens.Exists(ctx, tx, token)
		if err != nil {
			return err
		}
		if !exists {
			break
		}
		if attempt >= maxTokenRetries {
			return fmt.Errorf("%w: gave up after %d attempts", apperrors.ErrTokenExhausted, maxTokenRetries)
		}
		token, err = GenerateToken()
		if err != nil {
			return err
		}
	}

	human, err := p.tokens.Create(ctx, tx, token, true)
	if err != nil {
		return err
	}
	own, err := p.tokens.Create(ctx, tx, channel.ID, false)
	if err != nil {
		return err
	}
	return p.channels.AttachTokens(ctx, tx, channel, []*types.SecretToken{human, own})
}

type kindCount struct {
	KindID string `json:"kind_id"`
	Count  int    `json:"count"`
}

// fillPublishedFields recomputes the channel's derived aggregates over the
// nodes left published by this run.
func (p *Publisher) fillPublishedFields(ctx context.Context, tx *gorm.DB, channel *types.Channel) error {
	if channel.MainTreeID == nil {
		return fmt.Errorf("%w: channel %s has no root", apperrors.ErrMissingReference, channel.ID)
	}
	nodes, err := p.nodes.PublishedDescendants(ctx, tx, *channel.MainTreeID)
	if err != nil {
		return err
	}

	resourceCount := 0
	kindHistogram := map[string]int{}
	nodeIDs := make([]string, 0, len(nodes))
	languageSet := map[string]bool{}
	for _, node := range nodes {
		nodeIDs = append(nodeIDs, node.ID)
		// Topics contribute their language but never count as resources.
		if node.LanguageID != nil {
			languageSet[*node.LanguageID] = true
		}
		if node.Kind == types.KindTopic {
			continue
		}
		resourceCount++
		kindHistogram[node.Kind]++
	}

	kinds := make([]kindCount, 0, len(kindHistogram))
	for kind, count := range kindHistogram {
		kinds = append(kinds, kindCount{KindID: kind, Count: count})
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i].KindID < kinds[j].KindID })
	kindsJSON, err := json.Marshal(kinds)
	if err != nil {
		return err
	}

	files, err := p.files.ForNodeIDs(ctx, tx, nodeIDs)
	if err != nil {
		return err
	}
	// Total size counts each distinct (checksum, size) blob once, however
	// many nodes reference it.
	var totalSize int64
	seen := map[string]bool{}
	for _, file := range files {
		if file.LanguageID != nil {
			languageSet[*file.LanguageID] = true
		}
		key := fmt.Sprintf("%s:%d", file.Checksum, file.FileSize)
		if seen[key] {
			continue
		}
		seen[key] = true
		totalSize += file.FileSize
	}

	channel.TotalResourceCount = resourceCount
	channel.PublishedKindCount = kindsJSON
	channel.PublishedSize = totalSize

	languageIDs := make([]string, 0, len(languageSet))
	for id := range languageSet {
		languageIDs = append(languageIDs, id)
	}
	sort.Strings(languageIDs)
	if err := p.channels.AddIncludedLanguages(ctx, tx, channel, languageIDs); err != nil {
		return err
	}
	return p.channels.Save(ctx, tx, channel)
}
