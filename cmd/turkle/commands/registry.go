package commands

import (
	"github.com/hltcoe/turkle-client/pkg/turkle"
	"github.com/spf13/cobra"
)

// ResourceCommands maps each resource family to its command constructor.
var ResourceCommands = map[turkle.Resource]func() *cobra.Command{
	turkle.ResourceUsers:       NewUsersCommand,
	turkle.ResourceGroups:      NewGroupsCommand,
	turkle.ResourceProjects:    NewProjectsCommand,
	turkle.ResourceBatches:     NewBatchesCommand,
	turkle.ResourcePermissions: NewPermissionsCommand,
}
