package policy_test

import (
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/policy"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	owner := policy.Actor{UserID: 1, Role: model.RoleUser}
	stranger := policy.Actor{UserID: 2, Role: model.RoleUser}
	admin := policy.Actor{UserID: 99, Role: model.RoleAdmin}

	tests := []struct {
		name   string
		actor  policy.Actor
		action policy.Action
		res    policy.Resource
		want   bool
	}{
		{"owner updates own address", owner, policy.ActionUpdate, policy.AddressResource{OwnerID: 1}, true},
		{"owner deletes own address", owner, policy.ActionDelete, policy.AddressResource{OwnerID: 1}, true},
		{"stranger updates address", stranger, policy.ActionUpdate, policy.AddressResource{OwnerID: 1}, false},
		{"stranger deletes address", stranger, policy.ActionDelete, policy.AddressResource{OwnerID: 1}, false},
		{"admin updates any address", admin, policy.ActionUpdate, policy.AddressResource{OwnerID: 1}, true},

		{"owner reads own invoice", owner, policy.ActionRead, policy.InvoiceResource{OwnerID: 1}, true},
		{"stranger reads invoice", stranger, policy.ActionRead, policy.InvoiceResource{OwnerID: 1}, false},
		{"owner cannot update invoice", owner, policy.ActionUpdate, policy.InvoiceResource{OwnerID: 1}, false},
		{"owner cannot delete invoice", owner, policy.ActionDelete, policy.InvoiceResource{OwnerID: 1}, false},
		{"admin reads any invoice", admin, policy.ActionRead, policy.InvoiceResource{OwnerID: 1}, true},

		{"owner reads own order", owner, policy.ActionRead, policy.OrderResource{OwnerID: 1}, true},
		{"stranger reads order", stranger, policy.ActionRead, policy.OrderResource{OwnerID: 1}, false},
		{"owner cannot update order", owner, policy.ActionUpdate, policy.OrderResource{OwnerID: 1}, false},
		{"admin updates any order", admin, policy.ActionUpdate, policy.OrderResource{OwnerID: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Can(tt.actor, tt.action, tt.res))
		})
	}
}
