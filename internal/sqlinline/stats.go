package sqlinline

const QDashboardSummary = `--sql 6cb73aa5-52cb-4236-9f95-0b2d5bca35a2
select
    count(*) as total_lessons,
    coalesce(avg(satisfaction), 0) as avg_satisfaction,
    count(*) filter (where budget_status = 'under') as budget_under,
    count(*) filter (where budget_status = 'on') as budget_on,
    count(*) filter (where budget_status = 'over') as budget_over,
    count(*) filter (where timeline_status = 'early') as timeline_early,
    count(*) filter (where timeline_status = 'on_time') as timeline_on_time,
    count(*) filter (where timeline_status = 'late') as timeline_late,
    count(*) filter (where scope_changed) as scope_changed
from lessons
where user_id = $1::uuid;
`

const QDashboardClients = `--sql 40bf9721-9cfa-4c48-a66a-591e97289442
select client_name, count(*) as lesson_count, coalesce(avg(satisfaction), 0) as avg_satisfaction
from lessons
where user_id = $1::uuid and client_name <> ''
group by client_name
order by lesson_count desc, client_name asc
limit $2;
`

const QDashboardMonthly = `--sql a63783c6-49ab-481a-b673-6a351e410f77
select date_trunc('month', created_at) as month, count(*) as lesson_count, coalesce(avg(satisfaction), 0) as avg_satisfaction
from lessons
where user_id = $1::uuid and created_at >= now() - interval '12 months'
group by month
order by month asc;
`

const QSelectDistinctClients = `--sql b0e986c1-b03c-4fe1-ac41-feadba419950
select distinct client_name
from lessons
where user_id = $1::uuid and client_name <> ''
order by client_name asc;
`
