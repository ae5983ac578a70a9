package policy

import "storefront/internal/domain/model"

// 原典のcasl的な policy.can(action, subject) を
// 型付きの (actor, action, resource) 判定に置き換えたもの
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// 判定に必要な属性だけを持つ
type Actor struct {
	UserID int64
	Role   model.Role
}

// リソースの種別ごとのvariant
type Resource interface {
	ownerID() int64
}

type AddressResource struct {
	OwnerID int64
}

func (r AddressResource) ownerID() int64 { return r.OwnerID }

type InvoiceResource struct {
	OwnerID int64
}

func (r InvoiceResource) ownerID() int64 { return r.OwnerID }

type OrderResource struct {
	OwnerID int64
}

func (r OrderResource) ownerID() int64 { return r.OwnerID }

// Canは actor が resource に対して action してよいかを返す。
// adminは全許可、userは自分の所有物だけ
func Can(actor Actor, action Action, res Resource) bool {
	if actor.Role == model.RoleAdmin {
		return true
	}

	switch r := res.(type) {
	case AddressResource:
		return r.OwnerID == actor.UserID
	case InvoiceResource:
		//請求書は閲覧のみ（更新・削除の経路は無い）
		return action == ActionRead && r.OwnerID == actor.UserID
	case OrderResource:
		return action == ActionRead && r.OwnerID == actor.UserID
	default:
		return false
	}
}
