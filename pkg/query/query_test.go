// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/bizportal/pkg/query"
)

/*
TestStringSlice verifies trimming and that an empty filter means none.
*/
func TestStringSlice(t *testing.T) {
	assert.Nil(t, query.StringSlice(""))
	assert.Nil(t, query.StringSlice(" , "))
	assert.Equal(t, []string{"pending", "approved"}, query.StringSlice("pending, approved,"))
}
