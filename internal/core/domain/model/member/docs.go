// Package member provides the Member entity: the customer who places orders.
//
// A Member holds no reference to its orders. The orders of a member are found
// by listing orders filtered by member id.
package member
