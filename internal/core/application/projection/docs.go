// Package projection turns loaded order data into the flat, serialisable
// shapes returned to callers.
//
// Entity read paths produce OrderDto from *order.Order graphs; projection
// read paths produce OrderQueryDto from scalar rows. All functions are pure:
// they never touch the store, and an order whose relations were not loaded is
// reported as errs.LoaderUsageError rather than fetched.
//
// Item lists are always ordered by line number. Grouping keeps the order in
// which roots first appear in the input.
package projection
