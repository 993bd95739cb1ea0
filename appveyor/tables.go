package appveyor

import (
	"regexp"

	"github.com/erraggy/oasvariant/remap"
)

// SwaggerTags renames appveyor-openapi tags to appveyor-swagger tags.
var SwaggerTags = remap.TagRules{
	Rename: remap.Table{
		"Account":       "Project",
		"BuildJobs":     "Build",
		"Builds":        "Build",
		"Collaborators": "Collaborator",
		"Deployments":   "Deployment",
		"Environments":  "Environment",
		"Projects":      "Project",
		"Roles":         "Role",
		"Users":         "User",
	},
	Drop: []string{"Account", "BuildJobs", "User"},
}

// SwaggerTagOverrides pins the tags of paths whose operations were filed
// differently by appveyor-swagger.
var SwaggerTagOverrides = map[string][]string{
	"/projects/{accountName}/{projectSlug}/artifacts/{fileName}": {"Project"},
}

// SwaggerParameterIDs renames parameter registry keys.
var SwaggerParameterIDs = remap.Table{
	"artifactFileName": "fileName",
	"environmentId":    "deploymentEnvironmentId",
	"repositoryType":   "badgeRepoProvider",
}

// SwaggerParameterNames renames parameter names and path placeholders.
var SwaggerParameterNames = remap.Table{
	"artifactFileName": "fileName",
	"environmentId":    "deploymentEnvironmentId",
	"repositoryType":   "badgeRepoProvider",
}

// SwaggerOperationIDs renames operation ids.
var SwaggerOperationIDs = remap.Table{
	"createDeployment":                          "startDeployment",
	"deleteAccountUser":                         "deleteUser",
	"deleteAccountUserInvitation":               "cancelUserInvitation",
	"encryptData":                               "encryptValue",
	"getAccountUser":                            "getUser",
	"getAccountUserInvitations":                 "getUserInvitations",
	"getAccountUsers":                           "getUsers",
	"getBuildArtifact":                          "downloadArtifact",
	"getBuildArtifacts":                         "getArtifacts",
	"getBuildLog":                               "downloadLog",
	"getProjectArtifact":                        "downloadLastSuccessfulArtifact",
	"getProjectCurrentBuild":                    "getProjectLastBuild",
	"getProjectSettingsEnvironmentVariables":    "getProjectEnvironmentVariables",
	"getProjectSettingsYml":                     "getProjectSettingsYaml",
	"getProjectStatusImage":                     "getProjectStatusBadge",
	"getProjectStatusImageByBranch":             "getProjectBranchStatusBadge",
	"getProjectStatusImageByRepositoryName":     "getPublicProjectStatusBadge",
	"getProjectVersionBuild":                    "getProjectBuildByVersion",
	"getRoleById":                               "getRole",
	"inviteAccountUser":                         "inviteUser",
	"joinAccountAsCollaborator":                 "joinAccount",
	"reRunBuild":                                "reBuild",
	"stopDeployment":                            "cancelDeployment",
	"updateAccountUser":                         "updateUser",
	"updateProjectSettingsEnvironmentVariables": "updateProjectEnvironmentVariables",
}

// SwaggerSchemaNames renames definitions.
var SwaggerSchemaNames = remap.Table{
	"AddDeploymentRequest":                 "DeploymentStartRequest",
	"AddEnvironmentRequest":                "DeploymentEnvironmentAddition",
	"AddProjectRequest":                    "ProjectAddition",
	"AddRoleRequest":                       "RoleAddition",
	"ArtifactEntry":                        "Artifact",
	"BuildConfigurationModel":              "ProjectConfiguration",
	"BuildModel":                           "Build",
	"BuildModelBase":                       "BuildLookupModel",
	"BuildScript":                          "Script",
	"BuildWorkerImageModel":                "BuildWorkerImage",
	"CampfireNotificationEntry":            "CampfireNotificationProviderSettings",
	"DeploymentEnvironmentModel":           "DeploymentEnvironment",
	"DeploymentEnvironmentModelBase":       "DeploymentEnvironmentLookupModel",
	"DeploymentEnvironmentProjectModel":    "DeploymentEnvironmentProject",
	"DeploymentEnvironmentSettingsModel":   "DeploymentEnvironmentSettings",
	"DeploymentJobModel":                   "DeploymentJob",
	"DeploymentModel":                      "Deployment",
	"DeploymentModelResults":               "ProjectDeployment",
	"DeploymentSettings":                   "DeploymentProvider",
	"EmailNotificationEntry":               "EmailNotificationProviderSettings",
	"EncryptRequest":                       "EncryptDataRequest",
	"GitHubPullRequestNotificationEntry":   "GitHubPullRequestNotificationProviderSettings",
	"HipChatNotificationEntry":             "HipChatNotificationProviderSettings",
	"InviteAccountUserRequest":             "InviteUserRequest",
	"JoinAccountAsCollaboratorRequest":     "JoinAccountRequest",
	"MatrixVariablesGroup":                 "StoredNameValueMatrix",
	"NotificationEntry":                    "NotificationProviderSettings",
	"NuGetFeedModel":                       "NuGetFeed",
	"PermissionGroup":                      "GroupPermissions",
	"PermissionGroupName":                  "GroupName",
	"ProjectModel":                         "Project",
	"ProjectModelBase":                     "ProjectLookupModel",
	"ReBuildRequest":                       "ReRunBuildRequest",
	"RoleModel":                            "Role",
	"RolePermissionModel":                  "PermissionState",
	"SecurableValue":                       "StoredValue",
	"SecurableVariable":                    "StoredNameValue",
	"SecurityDescriptorModel":              "SecurityDescriptor",
	"SlackNotificationEntry":               "SlackNotificationProviderSettings",
	"StartBuildRequest":                    "BuildStartRequest",
	"StopDeploymentRequest":                "DeploymentCancellation",
	"StringValue":                          "StringValueObject",
	"UpdateAccountCollaboratorRequest":     "CollaboratorUpdate",
	"UpdateProjectBuildNumberRequest":      "ProjectBuildNumberUpdate",
	"UpdateUserModel":                      "UserAccountRolesResults",
	"UserAccountNotificationSettingsModel": "UserAccountSettings",
	"UserModel":                            "UserAccount",
	"VSOTeamRoomNotificationEntry":         "VSOTeamRoomNotificationProviderSettings",
	"WebhookNotificationEntry":             "WebhookNotificationProviderSettings",
}

// NotificationSettingsVarName extracts the class name from a notification
// settings type value such as
// "Appveyor.Models.SlackNotificationSettings, Appveyor.Models".
var NotificationSettingsVarName = regexp.MustCompile(`^Appveyor\.Models\.([A-Za-z0-9]+), Appveyor\.Models$`)
