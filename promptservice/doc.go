// Package promptservice implements the prompts capability: containers that
// own a set of prompt definitions and a dispatch layer that resolves caller
// arguments against each prompt's schema before invoking its handler.
//
// Two containers are provided. StaticPrompts holds an in-process, updatable
// set of prompt definitions and handlers. FSPrompts loads prompt definition
// files (YAML or JSON with templated message bodies) from a directory and
// can watch it for changes.
//
// Both containers plug into PromptsCapability, which adds cursor pagination
// over listings, structured dispatch logging, and list-changed notification
// fan-out for transports that advertise it. Argument resolution itself lives
// in promptargs; a prompt handler only ever sees a fully-resolved, validated
// argument object.
package promptservice
