// Package tui implements the interactive profile form for profile-cli.
//
// The package uses Bubble Tea's Elm architecture. AppModel is the top-level
// coordinator and owns the screens:
//
//   - Form: six text inputs bound to a profile.Controller
//   - Success: shows the saved profile and offers to edit again or quit
//
// # Submission Flow
//
//  1. ctrl+s, or enter on the submit button, asks the form to submit
//  2. The form calls Controller.Begin; validation errors show at once
//  3. For a valid draft AppModel sets IsSubmitting and runs the submitter
//     in a tea.Cmd, so keystrokes keep flowing while the request is out
//  4. The submitResultMsg is passed to Controller.Resolve and IsSubmitting
//     is cleared
//
// While IsSubmitting is set the submit key is ignored, the button reads
// "Saving..." and a spinner runs.
//
// # Key Bindings
//
//   - tab / down: next field
//   - shift+tab / up: previous field
//   - esc: leave the current field
//   - enter: next field, or submit when on the button
//   - ctrl+s: submit from anywhere
//   - ctrl+c: quit
//
// # Layout
//
// Every screen is wrapped by RenderApplicationContainer, which draws the
// application header and the context-sensitive help footer.
package tui
