package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "readonly_auditor",
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "content_editor",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/content", Action: "GET"},
				{Object: "/admin/promotions", Action: "*"},
				{Object: "/admin/promotions/:id", Action: "*"},
				{Object: "/admin/promotions/:id/toggle", Action: "PATCH"},
				{Object: "/admin/announcements", Action: "*"},
				{Object: "/admin/announcements/:id", Action: "*"},
				{Object: "/admin/announcements/:id/toggle", Action: "PATCH"},
				{Object: "/admin/wizard", Action: "*"},
				{Object: "/admin/wizard/:id", Action: "*"},
				{Object: "/admin/wizard/:id/next", Action: "POST"},
				{Object: "/admin/wizard/:id/previous", Action: "POST"},
				{Object: "/admin/wizard/:id/goto", Action: "POST"},
				{Object: "/admin/wizard/:id/submit", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role:     "merchandiser",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/stock", Action: "PATCH"},
				{Object: "/admin/posts", Action: "*"},
				{Object: "/admin/posts/:id", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role:     "community_manager",
			Inherits: []string{"readonly_auditor"},
			Policies: []Policy{
				{Object: "/admin/hub-members", Action: "*"},
				{Object: "/admin/hub-members/:id", Action: "*"},
				{Object: "/admin/hub-members/:id/points", Action: "PATCH"},
				{Object: "/admin/dashboard/overview", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	changed := false
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}

		exists, err := s.enforcer.HasNamedGroupingPolicy("g", role, roleAnchor)
		if err != nil {
			return fmt.Errorf("check builtin role failed: %w", err)
		}
		if !exists {
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, roleAnchor)
			if err != nil {
				return fmt.Errorf("create builtin role failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			added, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole)
			if err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
			if added {
				changed = true
			}
		}

		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			added, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action)
			if err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
			if added {
				changed = true
			}
		}
	}

	if changed {
		return s.saveAndReload()
	}
	return nil
}
