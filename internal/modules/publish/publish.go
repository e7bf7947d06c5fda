// Package publish turns one editorial channel tree into an immutable,
// versioned export database plus per-exercise bundles. The pipeline is
// synchronous and runs inside a single editorial-store transaction: a
// failure anywhere leaves flags, version and tokens untouched.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/yungbote/studio-publisher/internal/db"
	apperrors "github.com/yungbote/studio-publisher/internal/pkg/errors"
	"github.com/yungbote/studio-publisher/internal/pkg/logger"
	"github.com/yungbote/studio-publisher/internal/repos"
	"github.com/yungbote/studio-publisher/internal/storage"
)

// Options is the invocation surface of one export.
type Options struct {
	ChannelID string
	// Force bypasses the nothing-changed early exit.
	Force bool
	// UserID, when set, is attributed to generated exercise files.
	UserID *string
	// ForceExercises rebuilds every exercise bundle even when the node is
	// unchanged and a bundle file already exists.
	ForceExercises bool
}

// Outcome distinguishes a publish from the expected no-op case. Failures
// are ordinary returned errors, not outcomes.
type Outcome int

const (
	OutcomePublished Outcome = iota
	OutcomeNothingChanged
)

func (o Outcome) String() string {
	switch o {
	case OutcomePublished:
		return "published"
	case OutcomeNothingChanged:
		return "nothing changed"
	default:
		return "unknown"
	}
}

// Result reports what an export did.
type Result struct {
	Outcome Outcome
	DBPath  string
	Version int
}

// Publisher owns the export pipeline for all channels of one editorial
// store.
type Publisher struct {
	db    *gorm.DB
	log   *logger.Logger
	blobs storage.BlobStore

	channels  repos.ChannelRepo
	nodes     repos.ContentNodeRepo
	files     repos.FileRepo
	items     repos.AssessmentItemRepo
	tags      repos.TagRepo
	tokens    repos.TokenRepo
	prereqs   repos.PrerequisiteRepo
	languages repos.LanguageRepo
	licenses  repos.LicenseRepo

	// exportRoot is where finished export databases land, one per channel.
	exportRoot string
}

// PublisherDeps bundles the collaborators the pipeline needs.
type PublisherDeps struct {
	DB         *gorm.DB
	Blobs      storage.BlobStore
	Channels   repos.ChannelRepo
	Nodes      repos.ContentNodeRepo
	Files      repos.FileRepo
	Items      repos.AssessmentItemRepo
	Tags       repos.TagRepo
	Tokens     repos.TokenRepo
	Prereqs    repos.PrerequisiteRepo
	Languages  repos.LanguageRepo
	Licenses   repos.LicenseRepo
	ExportRoot string
}

func NewPublisher(deps PublisherDeps, baseLog *logger.Logger) *Publisher {
	return &Publisher{
		db:         deps.DB,
		log:        baseLog.With("service", "Publisher"),
		blobs:      deps.Blobs,
		channels:   deps.Channels,
		nodes:      deps.Nodes,
		files:      deps.Files,
		items:      deps.Items,
		tags:       deps.Tags,
		tokens:     deps.Tokens,
		prereqs:    deps.Prereqs,
		languages:  deps.Languages,
		licenses:   deps.Licenses,
		exportRoot: deps.ExportRoot,
	}
}

// Export publishes one channel. The export database is built in a temp
// file and only copied into the export root once the whole tree mapped, so
// consumers never observe a partial database.
func (p *Publisher) Export(ctx context.Context, opts Options) (Result, error) {
	log := p.log.With("channel_id", opts.ChannelID)

	channel, err := p.channels.GetByID(ctx, nil, opts.ChannelID)
	if err != nil {
		return Result{}, fmt.Errorf("could not load channel %s: %w", opts.ChannelID, err)
	}
	if channel.MainTreeID == nil {
		return Result{}, fmt.Errorf("%w: channel %s has no root node", apperrors.ErrMissingReference, channel.ID)
	}

	if !opts.Force {
		changed, err := p.nodes.FamilyHasChanges(ctx, nil, *channel.MainTreeID)
		if err != nil {
			return Result{}, err
		}
		if !changed {
			log.Info("No nodes have changed, nothing to publish")
			return Result{Outcome: OutcomeNothingChanged}, nil
		}
	}

	tempFile, err := os.CreateTemp("", "export-*.sqlite3")
	if err != nil {
		return Result{}, fmt.Errorf("%w: could not create temp export database: %v", apperrors.ErrStorageFailure, err)
	}
	tempPath := tempFile.Name()
	tempFile.Close()
	defer os.Remove(tempPath)

	target, err := db.NewExportDatabase(tempPath)
	if err != nil {
		return Result{}, err
	}
	targetOpen := true
	defer func() {
		if targetOpen {
			_ = db.CloseExportDatabase(target)
		}
	}()

	var result Result
	err = p.db.Transaction(func(tx *gorm.DB) error {
		root, err := p.nodes.GetByID(ctx, tx, *channel.MainTreeID)
		if err != nil {
			return fmt.Errorf("%w: root node %s: %v", apperrors.ErrMissingReference, *channel.MainTreeID, err)
		}

		m := newMapper(p, tx, target, opts, channel.Language, log)
		if err := m.mapTags(ctx, channel); err != nil {
			return err
		}
		if err := m.mapChannel(ctx, channel, root); err != nil {
			return err
		}
		if err := m.mapTree(ctx, root); err != nil {
			return err
		}
		if err := m.mapPrerequisites(ctx, root); err != nil {
			return err
		}

		// Release the sqlite handle before copying the file out.
		if err := db.CloseExportDatabase(target); err != nil {
			return fmt.Errorf("%w: could not close export database: %v", apperrors.ErrStorageFailure, err)
		}
		targetOpen = false

		dbPath, err := p.saveExportDatabase(tempPath, channel.ID)
		if err != nil {
			return err
		}

		if err := p.incrementVersion(ctx, tx, channel); err != nil {
			return err
		}
		if err := p.nodes.MarkFamilyPublished(ctx, tx, root.ID); err != nil {
			return err
		}
		if err := p.ensureTokens(ctx, tx, channel); err != nil {
			return err
		}
		if err := p.fillPublishedFields(ctx, tx, channel); err != nil {
			return err
		}

		result = Result{Outcome: OutcomePublished, DBPath: dbPath, Version: channel.Version}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	log.Info("Published channel", "version", result.Version, "db_path", result.DBPath)
	return result, nil
}

// saveExportDatabase copies the finished database into the export root,
// named by channel id. The root directory is created on demand.
func (p *Publisher) saveExportDatabase(tempPath, channelID string) (string, error) {
	if err := os.MkdirAll(p.exportRoot, 0o755); err != nil {
		return "", fmt.Errorf("%w: could not create export root %s: %v", apperrors.ErrStorageFailure, p.exportRoot, err)
	}
	destPath := filepath.Join(p.exportRoot, channelID+".sqlite3")

	src, err := os.Open(tempPath)
	if err != nil {
		return "", fmt.Errorf("%w: could not open %s: %v", apperrors.ErrStorageFailure, tempPath, err)
	}
	defer src.Close()
	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("%w: could not create %s: %v", apperrors.ErrStorageFailure, destPath, err)
	}
	defer dest.Close()
	if _, err := io.Copy(dest, src); err != nil {
		return "", fmt.Errorf("%w: could not copy export database to %s: %v", apperrors.ErrStorageFailure, destPath, err)
	}

	p.log.Info("Saved export database", "path", destPath)
	return destPath, nil
}
