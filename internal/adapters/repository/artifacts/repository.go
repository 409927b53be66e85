package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
)

// hardhatArtifact is the subset of a Hardhat artifact file we read
type hardhatArtifact struct {
	Format       string          `json:"_format"`
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

type debugFile struct {
	BuildInfo string `json:"buildInfo"`
}

type buildInfo struct {
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

// Repository indexes compiled Hardhat artifacts
type Repository struct {
	artifactsDir string
	selector     usecase.InteractiveSelector
	interactive  bool
	log          *slog.Logger

	mu        sync.RWMutex
	indexed   bool
	artifacts map[string]*models.Artifact   // key: fully qualified name
	byName    map[string][]*models.Artifact // key: contract name
	chosen    map[string]*models.Artifact   // key: ambiguous name picked by the user
}

// NewRepository creates a new artifact repository. The selector is used to
// disambiguate duplicate contract names when running interactively.
func NewRepository(cfg *config.RuntimeConfig, selector usecase.InteractiveSelector, log *slog.Logger) *Repository {
	return &Repository{
		artifactsDir: cfg.ArtifactsDir,
		selector:     selector,
		interactive:  !cfg.NonInteractive,
		log:          log,
		artifacts:    make(map[string]*models.Artifact),
		byName:       make(map[string][]*models.Artifact),
		chosen:       make(map[string]*models.Artifact),
	}
}

// Index walks the artifacts directory once
func (r *Repository) Index() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if _, err := os.Stat(r.artifactsDir); err != nil {
		return fmt.Errorf("artifacts directory %s not found, compile the contracts first: %w", r.artifactsDir, err)
	}

	err := filepath.WalkDir(r.artifactsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return err
	}

	r.indexed = true
	return nil
}

// processArtifact parses one artifact file; anything that is not a
// deployable Hardhat artifact is skipped
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var raw hardhatArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		r.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return nil
	}
	if raw.ContractName == "" || raw.SourceName == "" || raw.Bytecode == "" || raw.Bytecode == "0x" {
		return nil
	}

	parsedABI, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return fmt.Errorf("failed to parse ABI in %s: %w", path, err)
	}
	bytecode, err := hexutil.Decode(raw.Bytecode)
	if err != nil {
		// Unlinked library placeholders are not valid hex
		r.log.Debug("skipping artifact with unlinked bytecode", "path", path, "error", err)
		return nil
	}

	artifact := &models.Artifact{
		ContractName: raw.ContractName,
		SourceName:   raw.SourceName,
		ABI:          parsedABI,
		Bytecode:     bytecode,
		Path:         path,
	}
	debugPath := strings.TrimSuffix(path, ".json") + ".dbg.json"
	if _, err := os.Stat(debugPath); err == nil {
		artifact.DebugPath = debugPath
	}

	r.artifacts[artifact.FullyQualifiedName()] = artifact
	r.byName[artifact.ContractName] = append(r.byName[artifact.ContractName], artifact)
	r.log.Debug("indexed artifact", "contract", artifact.FullyQualifiedName())
	return nil
}

// FindArtifact resolves a contract name ("Referral") or fully qualified
// name ("contracts/Referral.sol:Referral")
func (r *Repository) FindArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	if artifact, ok := r.artifacts[name]; ok {
		r.mu.RUnlock()
		return artifact, nil
	}
	if artifact, ok := r.chosen[name]; ok {
		r.mu.RUnlock()
		return artifact, nil
	}
	matches := append([]*models.Artifact(nil), r.byName[name]...)
	r.mu.RUnlock()

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, name)
	case 1:
		return matches[0], nil
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].SourceName < matches[j].SourceName
	})
	if r.selector == nil || !r.interactive {
		fqns := make([]string, len(matches))
		for i, m := range matches {
			fqns[i] = m.FullyQualifiedName()
		}
		return nil, domain.AmbiguousContractError{Name: name, Matches: fqns}
	}
	artifact, err := r.selector.SelectContract(ctx, matches, fmt.Sprintf("Multiple contracts named %s, select one", name))
	if err != nil {
		return nil, err
	}

	// Deploy, verify and link calls must all see the same pick
	r.mu.Lock()
	r.chosen[name] = artifact
	r.mu.Unlock()
	return artifact, nil
}

// SourceBundle follows the artifact's .dbg.json to its build-info file
func (r *Repository) SourceBundle(ctx context.Context, artifact *models.Artifact) (*models.SourceBundle, error) {
	if artifact.DebugPath == "" {
		return nil, fmt.Errorf("no debug file next to %s", artifact.Path)
	}

	data, err := os.ReadFile(artifact.DebugPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read debug file: %w", err)
	}
	var dbg debugFile
	if err := json.Unmarshal(data, &dbg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", artifact.DebugPath, err)
	}
	if dbg.BuildInfo == "" {
		return nil, fmt.Errorf("%s does not reference a build-info file", artifact.DebugPath)
	}

	buildInfoPath := dbg.BuildInfo
	if !filepath.IsAbs(buildInfoPath) {
		buildInfoPath = filepath.Join(filepath.Dir(artifact.DebugPath), buildInfoPath)
	}
	data, err = os.ReadFile(buildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}
	var info buildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", buildInfoPath, err)
	}
	if info.SolcLongVersion == "" || len(info.Input) == 0 {
		return nil, fmt.Errorf("build info %s has no compiler input", buildInfoPath)
	}

	return &models.SourceBundle{
		FullyQualifiedName: artifact.FullyQualifiedName(),
		CompilerVersion:    info.SolcLongVersion,
		StandardJSONInput:  info.Input,
	}, nil
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
