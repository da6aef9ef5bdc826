// Package template implements the template bank: a table of (event ID,
// template string) pairs compiled into anchored regexes, used to recognize
// known log lines and reduce them to (event_id, params) rows before H1M2
// encoding.
//
// Templates accept two equivalent wildcard marker spellings, `<*>` and
// `[*]`, so a template table authored against either convention loads
// unchanged.
package template
