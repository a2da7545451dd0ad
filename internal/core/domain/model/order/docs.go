// Package order contains the Order aggregate: the root entity of the
// fulfillment domain together with its owned VendorOrder and LineItem
// children, the status state machines that govern their lifecycles, and
// the business order-id composition rules.
//
// The Order exclusively owns its VendorOrders and their LineItems. They are
// value-object children with no identity or lifecycle outside the parent;
// nothing outside the aggregate may mutate them directly. All mutations go
// through Order methods so that status histories stay append-only and the
// monetary invariants hold after every change.
package order
