package service

import "fmt"

func welcomeEmailTemplate(name, dashboardURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Hi %s,

Your account is ready. Add your first property from your dashboard and we will guide you through onboarding step by step:
%s

If you have questions, reach out to our team.

Best,
The %s Team`, name, dashboardURL, appName)

	return subject, body
}

func propertyOnboardedEmailTemplate(propertyName, propertyID, reviewURL, appName string) (string, string) {
	subject := fmt.Sprintf("New Property Onboarded: %s", propertyName)
	body := fmt.Sprintf(`A client has completed onboarding and the property is waiting for review.

Property: %s
ID: %s

Review it here:
%s

%s`, propertyName, propertyID, reviewURL, appName)

	return subject, body
}
