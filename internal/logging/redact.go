// Eatsential - Health-Aware Meal Recommendation Engine
// Copyright 2026 Taylor Brown (TaylorBrown96)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/TaylorBrown96/CSC510-proj3

package logging

// SanitizeSecret masks a credential, showing only first and last 4 characters.
// Use this when logging configuration that carries API keys or tokens.
//
// Example: "sk-proj-abcdef123456" -> "sk-p...3456"
func SanitizeSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 12 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
