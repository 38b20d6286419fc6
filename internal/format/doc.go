// Package format renders money, dates, slugs, query strings and status badges
// for templates and log lines.
//
// Unknown or unparsable input never produces an error; each function has a
// documented fallback instead.
package format
