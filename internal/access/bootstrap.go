package access

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"workhub/internal/model"
)

type PolicyWriter interface {
	Create(ctx context.Context, policy *model.AccessPolicy) error
	FindSystem(ctx context.Context) ([]model.AccessPolicy, error)
}

type RuleWriter interface {
	Create(ctx context.Context, rule *model.AccessRule) error
}

// defaultPolicyFile описывает формат JSON-файла с базовыми политиками
type defaultPolicyFile []struct {
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	ResourceType model.ResourceType  `json:"resource_type"`
	Permissions  model.PermissionSet `json:"permissions"`
	Conditions   model.JSONMap       `json:"conditions"`
	Priority     int                 `json:"priority"`
}

// Bootstrap seeds system policies from JSON files and clones them into
// newly created workspaces. System policies are created once and are
// immutable afterwards.
type Bootstrap struct {
	policies PolicyWriter
	rules    RuleWriter
}

func NewBootstrap(policies PolicyWriter, rules RuleWriter) *Bootstrap {
	return &Bootstrap{policies: policies, rules: rules}
}

// SeedSystemPolicies loads every *.json file from dir and creates the
// policies it describes with is_system set. When system policies already
// exist the call is a no-op. Failures of individual files are collected
// and reported together after the rest have been processed.
func (b *Bootstrap) SeedSystemPolicies(ctx context.Context, dir string) (int, error) {
	existing, err := b.policies.FindSystem(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return 0, err
	}

	var errs *multierror.Error
	created := 0
	for _, file := range files {
		n, err := b.seedFile(ctx, file)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", filepath.Base(file), err))
			continue
		}
		created += n
	}
	return created, errs.ErrorOrNil()
}

func (b *Bootstrap) seedFile(ctx context.Context, path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var defaults defaultPolicyFile
	if err := json.Unmarshal(raw, &defaults); err != nil {
		return 0, err
	}

	created := 0
	for _, d := range defaults {
		policy := &model.AccessPolicy{
			Name:         d.Name,
			Description:  d.Description,
			ResourceType: d.ResourceType,
			Permissions:  d.Permissions,
			Conditions:   d.Conditions,
			Priority:     d.Priority,
			IsActive:     true,
			IsSystem:     true,
		}
		if err := b.policies.Create(ctx, policy); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// SeedWorkspacePolicies clones the system policies into a fresh workspace
// and binds the strongest workspace policy to its owner with a rule, so
// the owner holds explicit fine-grained grants from day one.
func (b *Bootstrap) SeedWorkspacePolicies(ctx context.Context, workspaceID, ownerID uuid.UUID) error {
	defaults, err := b.policies.FindSystem(ctx)
	if err != nil {
		return err
	}

	for _, d := range defaults {
		wsID := workspaceID
		owner := ownerID
		policy := &model.AccessPolicy{
			Name:         d.Name,
			Description:  d.Description,
			ResourceType: d.ResourceType,
			Permissions:  d.Permissions,
			Conditions:   d.Conditions,
			Priority:     d.Priority,
			IsActive:     true,
			OwnerID:      &owner,
			WorkspaceID:  &wsID,
		}
		if err := b.policies.Create(ctx, policy); err != nil {
			return err
		}

		// Владельческая политика пространства сразу привязывается
		// к владельцу
		if d.ResourceType == model.ResourceWorkspace && d.Priority >= 100 {
			rule := &model.AccessRule{
				PolicyID:     policy.ID,
				ResourceID:   workspaceID,
				ResourceType: model.ResourceWorkspace,
				SubjectID:    ownerID,
				SubjectType:  model.SubjectUser,
				IsActive:     true,
			}
			if err := b.rules.Create(ctx, rule); err != nil {
				return err
			}
		}
	}
	return nil
}
