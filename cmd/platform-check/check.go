package main

import (
	"encoding/json"
	"fmt"
	"io"

	"adcompass/internal/registry"
)

type searchOutcome struct {
	Location  string   `json:"location"`
	Platforms []string `json:"platforms"`
}

type checkResult struct {
	Loaded   int                `json:"loaded"`
	Skipped  []registry.Skipped `json:"skipped"`
	Searches []searchOutcome    `json:"searches,omitempty"`
}

// check：在独立注册表中加载文件并执行给定查询，与服务端的加载/匹配逻辑一致
func check(content string, locations []string) (*checkResult, error) {
	reg := registry.New()
	rep, err := reg.LoadReport(content)
	if err != nil {
		return nil, err
	}
	res := &checkResult{Loaded: len(rep.Platforms), Skipped: rep.Skipped}
	if res.Skipped == nil {
		res.Skipped = []registry.Skipped{}
	}
	for _, loc := range locations {
		res.Searches = append(res.Searches, searchOutcome{Location: loc, Platforms: reg.Search(loc)})
	}
	return res, nil
}

func (r *checkResult) writeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *checkResult) writeText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "loaded: %d\nskipped: %d\n", r.Loaded, len(r.Skipped)); err != nil {
		return err
	}
	for _, s := range r.Skipped {
		if _, err := fmt.Fprintf(w, "  line %d (%s): %q\n", s.Line, s.Reason, s.Text); err != nil {
			return err
		}
	}
	for _, s := range r.Searches {
		if _, err := fmt.Fprintf(w, "search %s: %v\n", s.Location, s.Platforms); err != nil {
			return err
		}
	}
	return nil
}
