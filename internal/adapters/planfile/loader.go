package planfile

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/nouspsyche/launchpad/internal/domain"
	"github.com/nouspsyche/launchpad/internal/domain/config"
	"github.com/nouspsyche/launchpad/internal/domain/models"
	"github.com/nouspsyche/launchpad/internal/usecase"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Plan file types

// File represents the top-level YAML deployment plan
type File struct {
	Group         string      `yaml:"group"`
	Confirmations *uint64     `yaml:"confirmations,omitempty"`
	Steps         []StepEntry `yaml:"steps"`
	Links         []LinkEntry `yaml:"links,omitempty"`
}

// StepEntry is a single contract deployment in the plan file
type StepEntry struct {
	Name          string   `yaml:"name"`
	Contract      string   `yaml:"contract"`
	Args          []ArgRef `yaml:"args,omitempty"`
	Confirmations *uint64  `yaml:"confirmations,omitempty"`
}

// LinkEntry is a post-deployment call in the plan file
type LinkEntry struct {
	From          string   `yaml:"from"`
	Call          string   `yaml:"call"`
	Args          []ArgRef `yaml:"args,omitempty"`
	Confirmations *uint64  `yaml:"confirmations,omitempty"`
}

// ArgRef decodes one argument: a scalar literal, {ref: Step},
// {ether: "0.05"} or {units: "1.5", decimals: 6}.
type ArgRef struct {
	models.Arg
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *ArgRef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		arg, err := scalarArg(node)
		if err != nil {
			return err
		}
		a.Arg = arg
		return nil

	case yaml.MappingNode:
		var m struct {
			Ref      string `yaml:"ref"`
			Ether    string `yaml:"ether"`
			Units    string `yaml:"units"`
			Decimals *int   `yaml:"decimals"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		switch {
		case m.Ref != "":
			a.Arg = models.Ref(m.Ref)
		case m.Ether != "":
			v, err := ParseUnits(m.Ether, 18)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			a.Arg = models.Literal(v)
		case m.Units != "":
			if m.Decimals == nil {
				return fmt.Errorf("line %d: units requires decimals", node.Line)
			}
			v, err := ParseUnits(m.Units, *m.Decimals)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			a.Arg = models.Literal(v)
		default:
			return fmt.Errorf("line %d: argument mapping needs one of ref, ether or units", node.Line)
		}
		return nil

	default:
		return fmt.Errorf("line %d: unsupported argument", node.Line)
	}
}

func scalarArg(node *yaml.Node) (models.Arg, error) {
	switch node.ShortTag() {
	case "!!int":
		// Unquoted addresses and hex values resolve as ints; keep them as text.
		if strings.HasPrefix(strings.ToLower(node.Value), "0x") {
			return models.Literal(node.Value), nil
		}
		n, ok := new(big.Int).SetString(strings.ReplaceAll(node.Value, "_", ""), 10)
		if !ok {
			return models.Arg{}, fmt.Errorf("line %d: invalid integer %q", node.Line, node.Value)
		}
		return models.Literal(n), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return models.Arg{}, err
		}
		return models.Literal(b), nil
	case "!!float":
		return models.Arg{}, fmt.Errorf("line %d: fractional value %s needs {ether: ...} or {units: ..., decimals: ...}", node.Line, node.Value)
	default:
		return models.Literal(node.Value), nil
	}
}

// Loader reads deployment plans from YAML files
type Loader struct {
	defaultConfirmations *uint64
}

// NewLoader creates a plan loader using the project's confirmation default
func NewLoader(cfg *config.RuntimeConfig) *Loader {
	return &Loader{defaultConfirmations: cfg.Confirmations}
}

// Load parses a plan file and applies confirmation defaults
func (l *Loader) Load(ctx context.Context, path string) (*models.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return l.Parse(data)
}

// Parse builds a plan from YAML content
func (l *Loader) Parse(data []byte) (*models.Plan, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// An explicit 0 is kept; only unset depths fall back.
	confirmations := models.DefaultConfirmations
	if file.Confirmations != nil {
		confirmations = *file.Confirmations
	} else if l.defaultConfirmations != nil {
		confirmations = *l.defaultConfirmations
	}

	plan := &models.Plan{Group: file.Group}
	for i, s := range file.Steps {
		args, err := unwrap(s.Args)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, s.Name, err)
		}
		plan.Steps = append(plan.Steps, &models.DeploymentStep{
			Name:          s.Name,
			Contract:      s.Contract,
			Args:          args,
			Confirmations: lo.FromPtrOr(s.Confirmations, confirmations),
		})
	}

	for i, lk := range file.Links {
		args, err := unwrap(lk.Args)
		if err != nil {
			return nil, fmt.Errorf("link %d (%s.%s): %w", i+1, lk.From, lk.Call, err)
		}
		plan.Links = append(plan.Links, &models.LinkAction{
			From:          lk.From,
			Operation:     lk.Call,
			Args:          args,
			Confirmations: lo.FromPtrOr(lk.Confirmations, 1),
		})
	}

	return plan, nil
}

// unwrap rejects null entries, which yaml.v3 leaves as zero values
// without calling UnmarshalYAML
func unwrap(refs []ArgRef) ([]models.Arg, error) {
	args := make([]models.Arg, len(refs))
	for i, r := range refs {
		if r.Arg.IsEmpty() {
			return nil, fmt.Errorf("%w: argument %d is an empty argument", domain.ErrInvalidPlan, i)
		}
		args[i] = r.Arg
	}
	return args, nil
}

// ParseUnits converts a decimal string to an integer scaled by 10^decimals,
// e.g. ParseUnits("0.05", 18) = 50000000000000000.
func ParseUnits(value string, decimals int) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if decimals < 0 {
		return nil, fmt.Errorf("decimals must not be negative")
	}

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimals", value, decimals)
	}
	frac += strings.Repeat("0", decimals-len(frac))

	n, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if negative {
		n.Neg(n)
	}
	return n, nil
}

var _ usecase.PlanLoader = (*Loader)(nil)
