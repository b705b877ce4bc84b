// Package gas converts metered gas volumes into energy and money.
//
// Every function here is a pure function of its arguments: the physical
// constants travel with each call as a Constants value, so two calculations
// using different calorific values can run side by side without sharing
// state. Results are kept at full float64 precision; round them for display
// with RateResult.Rounded and BillResult.Rounded.
package gas
