package github

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Reconciler converges a desired set of rules with the rulesets a
// repository already has. Matching is by rule name, never by the
// opaque server id: the name is the natural key and is unique within
// one repository's rulesets.
type Reconciler struct {
	client    APIClient
	sanitizer *Sanitizer
	org       string
	log       *slog.Logger
}

// NewReconciler creates a reconciler scoped to one organization.
func NewReconciler(c APIClient, s *Sanitizer, org string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{client: c, sanitizer: s, org: org, log: logger}
}

// Apply sanitizes the desired rules, groups them by the repository
// named in their source, and issues the minimal create/update calls
// per repository. Rules whose source_type is not "Repository" are
// skipped; a source naming a repository outside the configured
// organization aborts the run.
func (r *Reconciler) Apply(desired []Record) error {
	byRepo := make(map[string][]Record)
	var order []string

	for _, raw := range desired {
		if st, ok := raw["source_type"].(string); ok && st != SourceTypeRepository {
			r.log.Info("skipping non-repository rule", "name", raw.Name(), "source_type", st)
			continue
		}

		rule, err := r.sanitizer.Sanitize(raw)
		if err != nil {
			return fmt.Errorf("rule %q: %w", raw.Name(), err)
		}

		repo, err := r.repoFromSource(rule)
		if err != nil {
			return err
		}

		if _, seen := byRepo[repo]; !seen {
			order = append(order, repo)
		}
		byRepo[repo] = append(byRepo[repo], rule)
	}

	for _, repo := range order {
		if err := r.reconcileRepo(repo, byRepo[repo]); err != nil {
			return err
		}
	}
	return nil
}

// ApplyDefaults seeds the built-in rule templates into each target
// repository. The template names are constants designed to collide
// across every repository, so existing rules are re-fetched fresh per
// repository and matched by name like any other rule.
func (r *Reconciler) ApplyDefaults(repos []string, templates []Record) error {
	for _, repo := range repos {
		rules := make([]Record, 0, len(templates))
		for _, tpl := range templates {
			rule := tpl.Clone()
			rule["source"] = r.org + "/" + repo
			clean, err := r.sanitizer.Sanitize(rule)
			if err != nil {
				return fmt.Errorf("default rule %q for %s: %w", rule.Name(), repo, err)
			}
			rules = append(rules, clean)
		}
		if err := r.reconcileRepo(repo, rules); err != nil {
			return err
		}
	}
	return nil
}

// reconcileRepo fetches the repository's existing rules once, then
// walks the desired rules deciding create-vs-update for each. A rule
// created here is appended to the in-memory existing list, merged with
// the server-assigned fields, so a later same-name rule in the batch
// becomes an update instead of a duplicate create.
func (r *Reconciler) reconcileRepo(repo string, desired []Record) error {
	existing, err := r.ExistingRules(repo)
	if err != nil {
		return err
	}

	for _, rule := range desired {
		payload := writePayload(rule)

		if id, ok := rule.ID(); ok {
			r.log.Info("updating ruleset", "repo", repo, "name", rule.Name(), "id", id)
			if _, err := r.client.UpdateRuleset(r.org, repo, id, payload); err != nil {
				return err
			}
			continue
		}

		if match := findByName(existing, rule.Name()); match != nil {
			id, _ := match.ID()
			r.log.Info("updating ruleset", "repo", repo, "name", rule.Name(), "id", id)
			if _, err := r.client.UpdateRuleset(r.org, repo, id, payload); err != nil {
				return err
			}
			continue
		}

		r.log.Info("creating ruleset", "repo", repo, "name", rule.Name())
		created, err := r.client.CreateRuleset(r.org, repo, payload)
		if err != nil {
			return err
		}

		// Merge the server-assigned identity back so the rest of this
		// run sees the rule as existing.
		reconciled := rule.Clone()
		for _, key := range []string{"id", "source", "source_type"} {
			if v, ok := created[key]; ok {
				reconciled[key] = v
			}
		}
		existing = append(existing, reconciled)
	}
	return nil
}

// ExistingRules lists a repository's rulesets and fetches each one's
// detail, since the list endpoint only returns summaries.
func (r *Reconciler) ExistingRules(repo string) ([]Record, error) {
	path := fmt.Sprintf("/repos/%s/%s/rulesets", r.org, repo)
	summaries, err := Fold(r.client, path, url.Values{}, []Record(nil), func(acc []Record, rec Record) []Record {
		return append(acc, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("listing rulesets for %s/%s: %w", r.org, repo, err)
	}

	rules := make([]Record, 0, len(summaries))
	for _, summary := range summaries {
		id, ok := summary.ID()
		if !ok {
			continue
		}
		detail, err := r.client.GetRuleset(r.org, repo, id)
		if err != nil {
			return nil, err
		}
		rules = append(rules, detail)
	}
	return rules, nil
}

// repoFromSource parses a sanitized rule's source as "<org>/<repo>"
// and rejects anything outside the configured organization.
func (r *Reconciler) repoFromSource(rule Record) (string, error) {
	source, _ := rule["source"].(string)
	org, repo, ok := strings.Cut(source, "/")
	if !ok || org != r.org || repo == "" || strings.Contains(repo, "/") {
		return "", &SourceError{Source: source, Org: r.org}
	}
	return repo, nil
}

func findByName(rules []Record, name string) Record {
	for _, rule := range rules {
		if rule.Name() == name {
			return rule
		}
	}
	return nil
}

// writePayload strips the identity fields the write endpoints do not
// accept in the body; the id travels in the URL instead.
func writePayload(rule Record) Record {
	payload := rule.Clone()
	delete(payload, "id")
	delete(payload, "source")
	delete(payload, "source_type")
	return payload
}
