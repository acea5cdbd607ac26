// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

/*
Package orderedmap provides a map implementation where the order of keys is
maintained (unlike the native Go map).

Data values are layered into a Map in the order their sources are given,
which keeps inspection output deterministic and stable.
*/
package orderedmap
