// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless library client runtime.
//
// It wires local storage, the render pipeline, the offline action queue,
// and background synchronization into a single process lifecycle.
package client
