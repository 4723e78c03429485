package domain

import "fmt"

// ScenarioKey selects leave-handling behavior for one (systemRole,
// workspaceRole) combination.
type ScenarioKey struct {
	SystemRole    SystemRole
	WorkspaceRole WorkspaceRole
}

// String renders the scenario in the canonical "<system>_<workspace>" form.
func (k ScenarioKey) String() string {
	return fmt.Sprintf("%s_%s", k.SystemRole, k.WorkspaceRole)
}

// Next-action codes returned to clients after a completed leave.
const (
	NextActionAdminDashboard       = "redirect_admin_dashboard"
	NextActionPersonalDashboard    = "redirect_personal_dashboard"
	NextActionCreatorDashboard     = "redirect_creator_dashboard"
	NextActionParticipantDashboard = "redirect_participant_dashboard"
)

// LeaveScenario describes what leaving means for one scenario key.
// CountSurveys / CountResponses mark a single %d verb in DataIntegrity that
// the lifecycle service fills with a live count.
type LeaveScenario struct {
	Message                   string
	DataIntegrity             string
	AccessChange              string
	NextAction                string
	RequiresOwnershipTransfer bool
	CountSurveys              bool
	CountResponses            bool
	Warning                   string
}

// leaveScenarios is the full role matrix. Every (systemRole, workspaceRole)
// pair has an entry; scenarioTotalityTest guards the table against new roles.
var leaveScenarios = map[ScenarioKey]LeaveScenario{
	{SystemRoleAdmin, RoleOwner}: {
		Message:       "Admin successfully left workspace. All data remains intact.",
		DataIntegrity: "All surveys and results remain in the workspace.",
		AccessChange:  "System admin rights are retained, but this workspace disappears from the admin management list.",
		NextAction:    NextActionAdminDashboard,
	},
	{SystemRoleAdmin, RoleCollaborator}: {
		Message:       "Admin collaborator left workspace.",
		DataIntegrity: "%d surveys remain in the workspace for the team.",
		AccessChange:  "Loses edit rights for workspace surveys; admin oversight of the platform is unaffected.",
		NextAction:    NextActionAdminDashboard,
		CountSurveys:  true,
	},
	{SystemRoleAdmin, RoleMember}: {
		Message:        "Admin member left workspace.",
		DataIntegrity:  "%d responses are preserved in the research sample.",
		AccessChange:   "No longer receives workspace notifications or sees internal surveys.",
		NextAction:     NextActionAdminDashboard,
		CountResponses: true,
	},
	{SystemRoleAdmin, RoleViewer}: {
		Message:        "Admin viewer left workspace.",
		DataIntegrity:  "%d responses are preserved in the research sample.",
		AccessChange:   "No longer receives workspace notifications or sees internal surveys.",
		NextAction:     NextActionAdminDashboard,
		CountResponses: true,
	},
	{SystemRoleCreator, RoleOwner}: {
		Message:                   "Creator owner successfully left workspace.",
		DataIntegrity:             "A workspace cannot be left without an owner. Ownership has been transferred to another member.",
		AccessChange:              "Loses workspace management rights. Returns to the personal dashboard with previously owned surveys.",
		NextAction:                NextActionPersonalDashboard,
		RequiresOwnershipTransfer: true,
		Warning:                   "You are the only owner. Transfer ownership before leaving.",
	},
	{SystemRoleCreator, RoleCollaborator}: {
		Message:       "Creator collaborator left workspace.",
		DataIntegrity: "%d surveys authored in the workspace remain with the team.",
		AccessChange:  "Loses edit/delete rights for workspace surveys. The workspace disappears from the sidebar.",
		NextAction:    NextActionCreatorDashboard,
		CountSurveys:  true,
	},
	{SystemRoleCreator, RoleMember}: {
		Message:        "Creator member left workspace.",
		DataIntegrity:  "%d responses are preserved in the research sample.",
		AccessChange:   "Returns to the normal creator interface without the team's internal surveys.",
		NextAction:     NextActionCreatorDashboard,
		CountResponses: true,
	},
	{SystemRoleCreator, RoleViewer}: {
		Message:        "Creator viewer left workspace.",
		DataIntegrity:  "%d responses are preserved in the research sample.",
		AccessChange:   "Returns to the normal creator interface without the team's internal surveys.",
		NextAction:     NextActionCreatorDashboard,
		CountResponses: true,
	},
	{SystemRoleParticipant, RoleOwner}: {
		Message:                   "Participant owner successfully left workspace.",
		DataIntegrity:             "A workspace cannot be left without an owner. Ownership has been transferred to another member.",
		AccessChange:              "Loses workspace management rights along with all borrowed creator powers.",
		NextAction:                NextActionParticipantDashboard,
		RequiresOwnershipTransfer: true,
		Warning:                   "You are the only owner. Transfer ownership before leaving.",
	},
	{SystemRoleParticipant, RoleCollaborator}: {
		Message:       "Participant collaborator left workspace. Borrowed powers revoked.",
		DataIntegrity: "%d surveys created with borrowed powers remain in the workspace; they cannot be taken along.",
		AccessChange:  "Loses all borrowed powers (editor, AI generator). The sidebar returns to the reduced participant layout.",
		NextAction:    NextActionParticipantDashboard,
		CountSurveys:  true,
		Warning:       "You will lose creator capabilities gained from this workspace.",
	},
	{SystemRoleParticipant, RoleMember}: {
		Message:        "Participant member left workspace.",
		DataIntegrity:  "%d responses are preserved for research integrity.",
		AccessChange:   "No longer receives workspace notifications or sees internal surveys.",
		NextAction:     NextActionParticipantDashboard,
		CountResponses: true,
	},
	{SystemRoleParticipant, RoleViewer}: {
		Message:        "Participant viewer left workspace.",
		DataIntegrity:  "%d responses are preserved for research integrity.",
		AccessChange:   "No longer receives workspace notifications or sees internal surveys.",
		NextAction:     NextActionParticipantDashboard,
		CountResponses: true,
	},
}

// ScenarioFor looks up the leave scenario for a role combination.
// Missing entries fail fast instead of defaulting.
func ScenarioFor(systemRole SystemRole, workspaceRole WorkspaceRole) (LeaveScenario, error) {
	key := ScenarioKey{SystemRole: systemRole, WorkspaceRole: workspaceRole}
	scenario, ok := leaveScenarios[key]
	if !ok {
		return LeaveScenario{}, &UnknownScenarioError{Scenario: key}
	}
	return scenario, nil
}

// AllScenarioKeys returns every key in the matrix, for totality checks.
func AllScenarioKeys() []ScenarioKey {
	keys := make([]ScenarioKey, 0, len(leaveScenarios))
	for k := range leaveScenarios {
		keys = append(keys, k)
	}
	return keys
}
