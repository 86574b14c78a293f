// Package services implements the driving port interfaces.
//
// PageRewriter moves a single document through the patch state machine,
// Generator builds new documents from a master page, and Batch applies
// both across a corpus through the driven ports.
package services
