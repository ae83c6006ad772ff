// Package markup converts the constrained pseudo-HTML emitted by the
// onboarding rich-text editor into ordered content blocks. The scanner is
// lexical: it recognizes the editor's exact tag spelling and nothing else.
package markup
