// Package generator wires one profilegen invocation: pick the input mode,
// resolve paths against the install directory, load the locale payloads, run
// the template injector and write the page. Nothing is written until every
// read and the injection have succeeded.
package generator
