// Copyright 2022 Teal.Finance/R85 contributors
// This file is part of Teal.Finance/R85,
// a keyed base-85 binary-to-text codec under the MIT License.
// SPDX-License-Identifier: MIT

// Package iec formats sizes in bytes using the units
// KiB (1024 bytes), MiB, GiB, TiB, PiB and EiB
// as defined by the ISO/IEC 80000-13:2008 standard.
package iec

import "fmt"

const unit int64 = 1024

// Size formats n bytes, such as "512 B" or "1.5 MiB".
func Size(n int64) string {
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := unit, 0
	for q := n / unit; q >= unit; q /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Ratio formats the size change from in to out bytes, such as "+25.0%".
func Ratio(in, out int64) string {
	if in == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", 100*float64(out-in)/float64(in))
}
