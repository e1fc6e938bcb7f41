package repository

import "time"

// PromotionListFilter 查询优惠活动列表的过滤条件
type PromotionListFilter struct {
	Page           int
	PageSize       int
	Search         string
	IsActive       *bool
	ShowOnHomepage *bool
	CreatedByID    uint
}

// AnnouncementListFilter 查询公告列表的过滤条件
type AnnouncementListFilter struct {
	Page           int
	PageSize       int
	Type           string
	Search         string
	IsActive       *bool
	ShowOnHomepage *bool
	CreatedByID    uint
}

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
	Organic    *bool
}

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	AuthorID uint
}

// HubMemberListFilter 查询 Hub 会员列表的过滤条件
type HubMemberListFilter struct {
	Page        int
	PageSize    int
	Keyword     string
	Tier        string
	Status      string
	JoinedFrom  *time.Time
	JoinedTo    *time.Time
}

// AuthzAuditLogListFilter 查询权限审计日志列表的过滤条件
type AuthzAuditLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	TargetAdminID   uint
	Action          string
	Role            string
	Object          string
	Method          string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
