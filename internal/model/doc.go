// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared between the portal,
// the AI adapter, export and the UI.
//
// # Key Types
//
//   - ChatTurn: one entry of the follow-up transcript (user or bot)
//   - ResearchItem: a piece of extracted content (video, web page, document)
//   - IntelligenceBlock: structured analysis of a ResearchItem
//   - ItemType: research item kind enumeration (video, web, doc)
//
// # Usage
//
//	item := model.NewResearchItem(model.ItemWeb, "https://example.com", text)
//	turns := []model.ChatTurn{model.UserTurn("What is X?"), model.BotTurn(answer)}
package model
