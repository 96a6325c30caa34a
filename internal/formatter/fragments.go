package formatter

import (
	"strings"

	"github.com/tordrt/crudgen/internal/schema"
)

// Fragment filenames, relative to the auxiliary output directory
const (
	RoutesFragmentFile = "web_routes.txt"
	MenuFragmentFile   = "adminlte_fragment.txt"
)

const phpOpenTag = "<?php\n"

// RoutesFragment merges the resource routes into the caller's existing
// routes file text. The controller import goes right after the first PHP
// open tag, or at the very start when there is none.
func RoutesFragment(resource schema.Resource, existing string) (schema.Artifact, error) {
	routes, err := execute("routes.tmpl", resource)
	if err != nil {
		return schema.Artifact{}, err
	}

	use := `use App\Http\Controllers\` + resource.Controller + ";\n"
	at := 0
	if i := strings.Index(existing, phpOpenTag); i >= 0 {
		at = i + len(phpOpenTag)
	}

	return schema.Artifact{
		Kind:     schema.KindRoutesFragment,
		Filename: RoutesFragmentFile,
		Content:  existing[:at] + use + existing[at:] + routes,
	}, nil
}

// MenuFragment renders the AdminLTE menu entries for the resource
func MenuFragment(resource schema.Resource) (schema.Artifact, error) {
	content, err := execute("menu.tmpl", resource)
	if err != nil {
		return schema.Artifact{}, err
	}
	return schema.Artifact{
		Kind:     schema.KindMenuFragment,
		Filename: MenuFragmentFile,
		Content:  content,
	}, nil
}
