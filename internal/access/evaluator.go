package access

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"workhub/internal/model"
)

// Decision is the outcome of a fine-grained authorization check.
type Decision string

const (
	DecisionAllow Decision = "allow"
	DecisionDeny  Decision = "deny"
)

type PolicyLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.AccessPolicy, error)
}

type RuleLookup interface {
	FindForResource(ctx context.Context, resourceType model.ResourceType, resourceID, subjectID uuid.UUID, groupIDs []uuid.UUID) ([]model.AccessRule, error)
}

type GroupLookup interface {
	GroupIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// Evaluator принимает точечные решения о доступе по политикам и правилам.
// Отсутствие явного разрешения трактуется как отказ: движок никогда не
// откатывается к грубой проверке роли, это отдельный путь (Gate).
type Evaluator struct {
	locator  *Locator
	policies PolicyLookup
	rules    RuleLookup
	groups   GroupLookup
	matcher  ConditionMatcher
}

func NewEvaluator(locator *Locator, policies PolicyLookup, rules RuleLookup, groups GroupLookup, matcher ConditionMatcher) *Evaluator {
	return &Evaluator{
		locator:  locator,
		policies: policies,
		rules:    rules,
		groups:   groups,
		matcher:  matcher,
	}
}

// candidate держит правило вместе с загруженной политикой
type candidate struct {
	rule   model.AccessRule
	policy *model.AccessPolicy
}

// Authorize decides whether the subject may perform permission on the
// resource. The resource must exist: a broken containment chain
// propagates as *ResourceNotFoundError. With no matching active
// policy/rule the answer is DecisionDeny, never a silent allow.
func (e *Evaluator) Authorize(
	ctx context.Context,
	subjectID uuid.UUID,
	resourceType model.ResourceType,
	resourceID uuid.UUID,
	permission model.PermissionType,
	reqCtx RequestContext,
) (Decision, error) {
	candidates, err := e.collect(ctx, subjectID, resourceType, resourceID)
	if err != nil {
		return DecisionDeny, err
	}

	matched := candidates[:0]
	for _, c := range candidates {
		if c.policy.Permissions.Contains(permission) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 0 {
		return DecisionDeny, nil
	}

	sortCandidates(matched)

	// Кандидаты в порядке убывания силы; несработавшее условие выбивает
	// только одного кандидата, выбор продолжается со следующего
	for _, c := range matched {
		if MatchAll(e.matcher, c.policy.Conditions, reqCtx) {
			return DecisionAllow, nil
		}
	}
	return DecisionDeny, nil
}

// Permissions returns the union of permissions granted to the subject on
// the resource by all condition-passing candidates. Like Authorize it
// reads policies and rules only, without the workspace role fallback.
func (e *Evaluator) Permissions(
	ctx context.Context,
	subjectID uuid.UUID,
	resourceType model.ResourceType,
	resourceID uuid.UUID,
	reqCtx RequestContext,
) ([]model.PermissionType, error) {
	candidates, err := e.collect(ctx, subjectID, resourceType, resourceID)
	if err != nil {
		return nil, err
	}

	seen := make(map[model.PermissionType]bool)
	var granted []model.PermissionType
	for _, c := range candidates {
		if !MatchAll(e.matcher, c.policy.Conditions, reqCtx) {
			continue
		}
		for _, p := range c.policy.Permissions {
			if !seen[p] {
				seen[p] = true
				granted = append(granted, p)
			}
		}
	}
	return granted, nil
}

// collect resolves the owning workspace, gathers the subject's rules for
// the resource and pairs them with their policies, dropping everything
// inactive or out of scope.
func (e *Evaluator) collect(
	ctx context.Context,
	subjectID uuid.UUID,
	resourceType model.ResourceType,
	resourceID uuid.UUID,
) ([]candidate, error) {
	workspaceID, err := e.locator.OwningWorkspace(ctx, resourceType, resourceID)
	if err != nil {
		return nil, err
	}

	groupIDs, err := e.groups.GroupIDsForUser(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	rules, err := e.rules.FindForResource(ctx, resourceType, resourceID, subjectID, groupIDs)
	if err != nil {
		return nil, err
	}

	loaded := make(map[uuid.UUID]*model.AccessPolicy)
	var candidates []candidate
	for _, rule := range rules {
		policy, ok := loaded[rule.PolicyID]
		if !ok {
			policy, err = e.policies.GetByID(ctx, rule.PolicyID)
			if err != nil {
				return nil, err
			}
			loaded[rule.PolicyID] = policy
		}
		if policy == nil || !policy.IsActive {
			continue
		}
		if policy.ResourceType != resourceType {
			continue
		}
		// Политика пространства действует только внутри него,
		// глобальная (WorkspaceID == nil) действует везде
		if policy.WorkspaceID != nil && *policy.WorkspaceID != workspaceID {
			continue
		}
		candidates = append(candidates, candidate{rule: rule, policy: policy})
	}
	return candidates, nil
}

// sortCandidates orders by priority descending, then specificity (a
// workspace-scoped policy beats a global one), then recency. The ordering
// is total, so evaluation is deterministic.
func sortCandidates(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.policy.Priority != b.policy.Priority {
			return a.policy.Priority > b.policy.Priority
		}
		aScoped := a.policy.WorkspaceID != nil
		bScoped := b.policy.WorkspaceID != nil
		if aScoped != bScoped {
			return aScoped
		}
		if !a.rule.CreatedAt.Equal(b.rule.CreatedAt) {
			return a.rule.CreatedAt.After(b.rule.CreatedAt)
		}
		return a.rule.ID.String() > b.rule.ID.String()
	})
}
