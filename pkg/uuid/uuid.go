// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the time-ordered ids used as primary keys for orders,
tickets, assignments and activity entries.

Version 7 values sort by creation time, which keeps the B-tree indexes on
those tables append-mostly.
*/
package uuid

import "github.com/google/uuid"

// New returns a new UUIDv7 string. It panics only if the OS entropy source fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuid: failed to generate v7: " + err.Error())
	}
	return id.String()
}
