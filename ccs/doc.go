// SPDX-License-Identifier: MIT

// Package ccs turns groups of subreads into polished consensus reads.
//
// A Caller runs, for each Group of reads from one molecule:
//
//  1. a POA draft over the reads in template orientation (package poa);
//  2. a multi-read scorer with one evaluator per read, reverse reads scored
//     against the reverse complement of the draft (package mutation);
//  3. refinement to convergence and per-base QVs (package refine).
//
// Run spreads groups over a worker pool and hands outcomes back in input
// order. Reads come from SAM, BAM or plain text (ReadGroups) and results
// leave as FASTQ (WriteFASTQ). Settings are loaded with viper from any
// format it understands, with CCS_* environment overrides.
package ccs
