package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/jos-ren/Sors-Finance-sub002/internal/categories"
	"github.com/jos-ren/Sors-Finance-sub002/internal/config"
	"github.com/jos-ren/Sors-Finance-sub002/internal/ledger"
	"github.com/jos-ren/Sors-Finance-sub002/internal/logger"
)

// workspace bundles the services every workspace-bound command needs.
type workspace struct {
	root   string
	cfg    *config.Config
	cats   *categories.Service
	ledger *ledger.Service
	log    zerolog.Logger
}

func openWorkspace(dir string) (*workspace, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("opening workspace (run 'sors init' first): %w", err)
	}

	cats, err := categories.Load(root)
	if err != nil {
		return nil, err
	}

	return &workspace{
		root:   root,
		cfg:    cfg,
		cats:   cats,
		ledger: ledger.NewService(root, cats),
		log:    logger.New(cfg.Log.Level),
	}, nil
}

func (w *workspace) importDir() string {
	return filepath.Join(w.root, w.cfg.Import.Dir)
}
