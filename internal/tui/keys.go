// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up    key.Binding
	down  key.Binding
	enter key.Binding
	esc   key.Binding
	quit  key.Binding

	newItem     key.Binding
	toggle      key.Binding
	description key.Binding
	attach      key.Binding
	detach      key.Binding
	delete      key.Binding
	copy        key.Binding

	search      key.Binding
	statusCycle key.Binding
	groupCycle  key.Binding
	dateFilter  key.Binding
	tagManager  key.Binding

	account   key.Binding
	buildInfo key.Binding

	// tag manager
	add       key.Binding
	rename    key.Binding
	color     key.Binding
	moveUp    key.Binding
	moveDown  key.Binding
	sortOrder key.Binding
	register  key.Binding

	yes key.Binding
	no  key.Binding
}

var keys = keyMap{
	up:    key.NewBinding(key.WithKeys("up", "k")),
	down:  key.NewBinding(key.WithKeys("down", "j")),
	enter: key.NewBinding(key.WithKeys("enter")),
	esc:   key.NewBinding(key.WithKeys("esc")),
	quit:  key.NewBinding(key.WithKeys("q", "ctrl+c")),

	newItem:     key.NewBinding(key.WithKeys("n")),
	toggle:      key.NewBinding(key.WithKeys(" ", "x")),
	description: key.NewBinding(key.WithKeys("e")),
	attach:      key.NewBinding(key.WithKeys("i")),
	detach:      key.NewBinding(key.WithKeys("I")),
	delete:      key.NewBinding(key.WithKeys("d")),
	copy:        key.NewBinding(key.WithKeys("c")),

	search:      key.NewBinding(key.WithKeys("/")),
	statusCycle: key.NewBinding(key.WithKeys("f")),
	groupCycle:  key.NewBinding(key.WithKeys("g")),
	dateFilter:  key.NewBinding(key.WithKeys("D")),
	tagManager:  key.NewBinding(key.WithKeys("t")),

	account:   key.NewBinding(key.WithKeys("l")),
	buildInfo: key.NewBinding(key.WithKeys("v")),

	add:       key.NewBinding(key.WithKeys("a")),
	rename:    key.NewBinding(key.WithKeys("r")),
	color:     key.NewBinding(key.WithKeys("C")),
	moveUp:    key.NewBinding(key.WithKeys("K")),
	moveDown:  key.NewBinding(key.WithKeys("J")),
	sortOrder: key.NewBinding(key.WithKeys("o")),
	register:  key.NewBinding(key.WithKeys("ctrl+r")),

	yes: key.NewBinding(key.WithKeys("y")),
	no:  key.NewBinding(key.WithKeys("n", "esc")),
}
