package rules

import "fmt"

// stalledAfter is how long without a tick before OtTicksStalled fires:
// three default 15m intervals.
const stalledAfter = 45 * 60

// AlertRules returns a PrometheusRule CR containing alert rules for
// offer-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return newRule("ot-alerts", RuleGroup{
		Name: "ot-alerts",
		Rules: []Rule{
			alert("OtDown", `absent(up{job="offer-tracker"})`, "5m", "critical",
				"Offer tracker is down",
				"The offer-tracker job has been absent for more than 5 minutes. No offers are being watched."),
			alert("OtReadinessDown", `ot_readyz_up == 0`, "5m", "critical",
				"Offer tracker state store is unreachable",
				"The readiness probe has failed for 5 minutes. Ticks abort until the notification record can be read."),
			alert("OtTicksStalled", fmt.Sprintf(`time() - ot_last_tick_timestamp_seconds > %d`, stalledAfter), "0m", "warning",
				"Offer tracker has stopped polling",
				"No tick has started for three intervals. The scheduler may be stuck behind a hung tick."),
			alert("OtCatalogErrors", `sum(ot:catalog_errors:rate5m) > 0`, "1h", "warning",
				"Catalog requests keep failing",
				"Catalog fetches have failed for an hour. The listing endpoint may have changed or is blocking requests."),
			alert("OtNotificationFailures", `ot:notification_failures:rate5m > 0`, "15m", "critical",
				"Offer notifications are failing",
				"An active offer could not be announced. Check the Telegram token and chat id."),
			alert("OtStateErrors", `increase(ot_state_errors_total[15m]) > 0`, "0m", "warning",
				"Notification record errors",
				"Reading or writing the notification record failed. A corrupt record file needs manual repair."),
		},
	})
}

func alert(name, expr, forDur, severity, summary, description string) Rule {
	return Rule{
		Alert: name,
		Expr:  expr,
		For:   forDur,
		Labels: map[string]string{
			"severity": severity,
		},
		Annotations: map[string]string{
			"summary":     summary,
			"description": description,
		},
	}
}
